package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	require.NoError(t, Init(lang))
	return WithLocalizer(context.Background(), NewLocalizer(lang))
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")
	assert.Equal(t, "Expert", T(ctx, "MasteryExpert"))
	assert.Equal(t, "Partial Understanding", T(ctx, "StatusPartial"))
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")
	assert.Equal(t, "Эксперт", T(ctx, "MasteryExpert"))
	assert.Equal(t, "Частичное понимание", T(ctx, "StatusPartial"))
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")
	assert.Equal(t, "1 question", Tp(ctx, "QuizQuestionCount", 1))
	assert.Equal(t, "5 questions", Tp(ctx, "QuizQuestionCount", 5))

	ru := initLang(t, "ru")
	assert.Equal(t, "1 вопрос", Tp(ru, "QuizQuestionCount", 1))
	assert.Equal(t, "3 вопроса", Tp(ru, "QuizQuestionCount", 3))
	assert.Equal(t, "5 вопросов", Tp(ru, "QuizQuestionCount", 5))
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")
	got := Td(ctx, "TopicPerfect", map[string]any{"Topic": "graphs", "Correct": 2, "Total": 2})
	assert.Equal(t, "Perfect score in: graphs (2/2 correct)", got)
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")
	assert.Equal(t, "NonExistentKey", T(ctx, "NonExistentKey"))
}

func TestContextWithoutLocalizerUsesDefault(t *testing.T) {
	require.NoError(t, Init("en"))
	assert.Equal(t, "Novice", T(context.Background(), "MasteryNovice"))
}

func TestLanguages(t *testing.T) {
	require.NoError(t, Init("en"))
	assert.Len(t, Languages(), 2)
}

func TestMiddleware(t *testing.T) {
	require.NoError(t, Init("en"))
	var got string
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "MasteryBeginner")
	}))

	tests := []struct {
		name   string
		url    string
		header string
		want   string
	}{
		{"default", "/", "", "Beginner"},
		{"accept-language", "/", "ru-RU,ru;q=0.9", "Начинающий"},
		{"query wins", "/?lang=en", "ru", "Beginner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitInvalidLanguage(t *testing.T) {
	assert.Error(t, Init("not a language!"))
}
