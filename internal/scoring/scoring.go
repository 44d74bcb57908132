// Package scoring grades quiz submissions and summarizes attempt history.
package scoring

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Ateebshaikh21/Thinkora/internal/i18n"
	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

const (
	weakBelow      = 60.0
	strongFrom     = 80.0
	advanceFrom    = 75.0
	partialFrom    = 60.0
	quickPerItem   = 30.0
	carefulPerItem = 120.0
)

// band is one row of the percentage-to-feedback table.
type band struct {
	min     float64
	grade   string
	mastery string
}

// Bands are ordered from the highest threshold down.
var bands = []band{
	{90, "A+", "Expert"},
	{80, "A", "Advanced"},
	{70, "B", "Intermediate"},
	{60, "C", "Beginner"},
	{50, "D", "Novice"},
	{math.Inf(-1), "F", "NeedsImprovement"},
}

func bandFor(pct float64) band {
	for _, b := range bands {
		if pct >= b.min {
			return b
		}
	}
	return bands[len(bands)-1]
}

// Grade maps a percentage to a letter grade.
func Grade(pct float64) string { return bandFor(pct).grade }

// Evaluate scores sub against the quiz items it answers. Feedback text is
// localized with the localizer carried by ctx.
func Evaluate(ctx context.Context, items []model.QuizItem, sub model.QuizSubmission) model.QuizResult {
	res := model.QuizResult{
		ID:             uuid.NewString(),
		QuizID:         sub.QuizID,
		SessionID:      sub.SessionID,
		UserID:         sub.UserID,
		TotalQuestions: len(items),
		TimeTaken:      sub.TimeTaken,
		SubmittedAt:    time.Now().UTC(),
	}

	topicIdx := make(map[string]int)
	for _, item := range items {
		marks := item.Marks
		if marks == 0 {
			marks = 1
		}
		topic := item.Topic
		if topic == "" {
			topic = "General"
		}

		var answer *int
		if a, ok := sub.Answers[item.ID]; ok {
			answer = &a
		}
		correct := answer != nil && *answer == item.CorrectIndex

		res.TotalMarks += marks
		if correct {
			res.Correct++
			res.EarnedMarks += marks
		}

		i, ok := topicIdx[topic]
		if !ok {
			i = len(res.Topics)
			topicIdx[topic] = i
			res.Topics = append(res.Topics, model.TopicScore{Topic: topic})
		}
		res.Topics[i].Total++
		if correct {
			res.Topics[i].Correct++
		}

		res.Items = append(res.Items, model.ItemResult{
			QuestionID:    item.ID,
			Question:      item.Text,
			UserAnswer:    answer,
			CorrectAnswer: item.CorrectIndex,
			IsCorrect:     correct,
			Explanation:   item.Explanation,
			Topic:         topic,
			Marks:         marks,
		})
	}

	var pct float64
	if res.TotalMarks > 0 {
		pct = float64(res.EarnedMarks) / float64(res.TotalMarks) * 100
	}
	res.Percentage = round1(pct)
	res.Grade = Grade(pct)

	for i := range res.Topics {
		tp := percent(res.Topics[i].Correct, res.Topics[i].Total)
		res.Topics[i].Percentage = round1(tp)
		switch {
		case tp < weakBelow:
			res.WeakAreas = append(res.WeakAreas, res.Topics[i].Topic)
		case tp >= strongFrom:
			res.StrongAreas = append(res.StrongAreas, res.Topics[i].Topic)
		}
	}

	res.Feedback = feedback(ctx, pct, len(items), sub.TimeTaken, res.Topics)
	return res
}

func feedback(ctx context.Context, pct float64, questions, timeTaken int, topics []model.TopicScore) model.Feedback {
	b := bandFor(pct)
	fb := model.Feedback{
		OverallAssessment: i18n.T(ctx, "Overall"+b.mastery),
		MasteryLevel:      i18n.T(ctx, "Mastery"+b.mastery),
		Recommendation:    i18n.T(ctx, "Recommend"+b.mastery),
		ReadyToAdvance:    pct >= advanceFrom,
		Suggestions:       []string{},
		TopicFeedback:     []string{},
	}

	var avg float64
	if questions > 0 {
		avg = float64(timeTaken) / float64(questions)
	}
	switch {
	case avg < quickPerItem:
		fb.TimeFeedback = i18n.T(ctx, "TimeQuick")
	case avg > carefulPerItem:
		fb.TimeFeedback = i18n.T(ctx, "TimeCareful")
	default:
		fb.TimeFeedback = i18n.T(ctx, "TimeGood")
	}

	status := "NeedsStudy"
	switch {
	case pct >= advanceFrom:
		status = "Learned"
	case pct >= partialFrom:
		status = "Partial"
	}
	fb.LearningStatus = i18n.T(ctx, "Status"+status)
	fb.LearningMessage = i18n.T(ctx, "Message"+status)

	if pct < advanceFrom {
		fb.Suggestions = append(fb.Suggestions, i18n.T(ctx, "SuggestRetake"), i18n.T(ctx, "SuggestConcepts"))
	}
	if avg < quickPerItem {
		fb.Suggestions = append(fb.Suggestions, i18n.T(ctx, "SuggestReadCarefully"))
	}

	for _, t := range topics {
		data := map[string]any{"Topic": t.Topic, "Correct": t.Correct, "Total": t.Total}
		switch tp := percent(t.Correct, t.Total); {
		case tp < weakBelow:
			fb.TopicFeedback = append(fb.TopicFeedback, i18n.Td(ctx, "TopicNeedsImprovement", data))
		case tp == 100:
			fb.TopicFeedback = append(fb.TopicFeedback, i18n.Td(ctx, "TopicPerfect", data))
		}
	}
	return fb
}

// Summarize orders attempts newest first and computes best, average and
// the improvement between the newest attempt and up to two before it.
func Summarize(results []model.QuizResult) model.QuizHistory {
	attempts := make([]model.QuizResult, len(results))
	copy(attempts, results)
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].SubmittedAt.After(attempts[j].SubmittedAt)
	})

	h := model.QuizHistory{Attempts: attempts, TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		h.Attempts = []model.QuizResult{}
		return h
	}

	var sum float64
	h.BestScore = attempts[0].Percentage
	for _, a := range attempts {
		sum += a.Percentage
		h.BestScore = math.Max(h.BestScore, a.Percentage)
	}
	h.AverageScore = round1(sum / float64(len(attempts)))
	h.LatestAttempt = &h.Attempts[0]
	if len(attempts) >= 2 {
		oldest := min(3, len(attempts)) - 1
		h.Improvement = round1(attempts[0].Percentage - attempts[oldest].Percentage)
	}
	return h
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
