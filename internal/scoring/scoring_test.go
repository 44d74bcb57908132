package scoring

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ateebshaikh21/Thinkora/internal/i18n"
	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	require.NoError(t, i18n.Init("en"))
	return i18n.WithLocalizer(context.Background(), i18n.NewLocalizer("en"))
}

func items() []model.QuizItem {
	return []model.QuizItem{
		{ID: "q1", Text: "One", Options: []string{"a", "b"}, CorrectIndex: 0, Marks: 2, Topic: "graphs"},
		{ID: "q2", Text: "Two", Options: []string{"a", "b"}, CorrectIndex: 1, Marks: 1, Topic: "graphs"},
		{ID: "q3", Text: "Three", Options: []string{"a", "b"}, CorrectIndex: 1, Topic: "trees"},
		{ID: "q4", Text: "Four", Options: []string{"a", "b"}, CorrectIndex: 0, Marks: 1},
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A+"}, {90, "A+"}, {89.9, "A"}, {80, "A"}, {75, "B"},
		{60, "C"}, {50, "D"}, {49.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.pct), "pct %v", tt.pct)
	}
}

func TestEvaluate(t *testing.T) {
	ctx := testCtx(t)
	sub := model.QuizSubmission{
		QuizID:    "quiz",
		SessionID: "sess",
		UserID:    "u1",
		Answers:   map[string]int{"q1": 0, "q2": 1, "q3": 0},
		TimeTaken: 200,
	}
	res := Evaluate(ctx, items(), sub)

	assert.Equal(t, 4, res.TotalQuestions)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 5, res.TotalMarks)
	assert.Equal(t, 3, res.EarnedMarks)
	assert.Equal(t, 60.0, res.Percentage)
	assert.Equal(t, "C", res.Grade)
	assert.NotEmpty(t, res.ID)

	require.Len(t, res.Topics, 3)
	assert.Equal(t, model.TopicScore{Topic: "graphs", Correct: 2, Total: 2, Percentage: 100}, res.Topics[0])
	assert.Equal(t, "General", res.Topics[2].Topic)
	assert.Equal(t, []string{"trees", "General"}, res.WeakAreas)
	assert.Equal(t, []string{"graphs"}, res.StrongAreas)

	require.Len(t, res.Items, 4)
	assert.Nil(t, res.Items[3].UserAnswer)
	assert.False(t, res.Items[2].IsCorrect)
	assert.Equal(t, 1, res.Items[2].Marks)

	fb := res.Feedback
	assert.Equal(t, "Beginner", fb.MasteryLevel)
	assert.Equal(t, "Partial Understanding", fb.LearningStatus)
	assert.False(t, fb.ReadyToAdvance)
	assert.Equal(t, "Your pacing was good, balancing speed with accuracy.", fb.TimeFeedback)
	assert.Len(t, fb.Suggestions, 2)
	assert.Equal(t, []string{
		"Perfect score in: graphs (2/2 correct)",
		"Need improvement in: trees (0/1 correct)",
		"Need improvement in: General (0/1 correct)",
	}, fb.TopicFeedback)
}

func TestEvaluateFeedbackBands(t *testing.T) {
	ctx := testCtx(t)
	all := items()

	perfect := Evaluate(ctx, all, model.QuizSubmission{
		Answers:   map[string]int{"q1": 0, "q2": 1, "q3": 1, "q4": 0},
		TimeTaken: 1000,
	})
	assert.Equal(t, 100.0, perfect.Percentage)
	assert.Equal(t, "Expert", perfect.Feedback.MasteryLevel)
	assert.True(t, perfect.Feedback.ReadyToAdvance)
	assert.Equal(t, "Subject Learned Successfully", perfect.Feedback.LearningStatus)
	assert.Equal(t, "You took your time with each question, which shows careful consideration.", perfect.Feedback.TimeFeedback)
	assert.Empty(t, perfect.Feedback.Suggestions)

	rushed := Evaluate(ctx, all, model.QuizSubmission{TimeTaken: 10})
	assert.Equal(t, 0.0, rushed.Percentage)
	assert.Equal(t, "F", rushed.Grade)
	assert.Equal(t, "Needs Improvement", rushed.Feedback.MasteryLevel)
	assert.Equal(t, "Needs More Study", rushed.Feedback.LearningStatus)
	assert.Len(t, rushed.Feedback.Suggestions, 3)
}

func TestEvaluateEmptyQuiz(t *testing.T) {
	res := Evaluate(testCtx(t), nil, model.QuizSubmission{})
	assert.Equal(t, 0.0, res.Percentage)
	assert.Equal(t, "F", res.Grade)
	assert.Empty(t, res.Topics)
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	results := []model.QuizResult{
		{ID: "r1", Percentage: 40, SubmittedAt: base},
		{ID: "r3", Percentage: 70, SubmittedAt: base.Add(2 * time.Hour)},
		{ID: "r2", Percentage: 55, SubmittedAt: base.Add(time.Hour)},
		{ID: "r4", Percentage: 85, SubmittedAt: base.Add(3 * time.Hour)},
	}
	h := Summarize(results)
	assert.Equal(t, 4, h.TotalAttempts)
	assert.Equal(t, "r4", h.Attempts[0].ID)
	assert.Equal(t, "r1", h.Attempts[3].ID)
	assert.Equal(t, 85.0, h.BestScore)
	assert.Equal(t, 62.5, h.AverageScore)
	require.NotNil(t, h.LatestAttempt)
	assert.Equal(t, "r4", h.LatestAttempt.ID)
	assert.Equal(t, 30.0, h.Improvement)
}

func TestSummarizeSmallHistories(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, 0, empty.TotalAttempts)
	assert.Nil(t, empty.LatestAttempt)
	assert.NotNil(t, empty.Attempts)

	one := Summarize([]model.QuizResult{{Percentage: 50}})
	assert.Equal(t, 0.0, one.Improvement)

	two := Summarize([]model.QuizResult{
		{Percentage: 50, SubmittedAt: time.Unix(1, 0)},
		{Percentage: 80, SubmittedAt: time.Unix(2, 0)},
	})
	assert.Equal(t, 30.0, two.Improvement)
}
