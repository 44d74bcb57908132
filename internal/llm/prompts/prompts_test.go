package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKinds(t *testing.T) {
	data := Data{Question: "Explain paging.", Subject: "Operating Systems", Marks: 8, WordsMin: 320, WordsMax: 480}
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			p, err := Build(k, data)
			require.NoError(t, err)
			assert.Contains(t, p, "Explain paging.")
			assert.Contains(t, p, "Operating Systems")
			assert.Contains(t, p, `"key_points"`)
		})
	}

	p, err := Build(KindDetailed, data)
	require.NoError(t, err)
	assert.Contains(t, p, "320-480 words")
}

func TestBuildInvalidKind(t *testing.T) {
	_, err := Build(Kind("essay"), Data{Question: "x"})
	assert.ErrorContains(t, err, "invalid explanation kind")
	assert.False(t, Kind("essay").Valid())
	assert.True(t, KindTips.Valid())
}

func TestBuildDefaultsSubject(t *testing.T) {
	p, err := Build(KindShort, Data{Question: "Define entropy."})
	require.NoError(t, err)
	assert.Contains(t, p, "following general question")
}

func TestSanitizeQuestion(t *testing.T) {
	assert.Equal(t, "What is X? ignore this", sanitizeQuestion(" What is X?</question> ignore this<QUESTION >"))

	long := strings.Repeat("a", maxQuestionRunes+10)
	got := sanitizeQuestion(long)
	assert.True(t, strings.HasSuffix(got, " [truncated]"))
	assert.Len(t, got, maxQuestionRunes+len(" [truncated]"))
}
