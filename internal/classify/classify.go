// Package classify places extracted questions into the four fixed-size
// categories of a question set.
package classify

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
	"github.com/Ateebshaikh21/Thinkora/internal/similarity"
	"github.com/Ateebshaikh21/Thinkora/internal/textrule"
)

// MinQuestions is the input size below which records are recycled.
const MinQuestions = 22

// signal is what the mark-based category rules look at.
type signal struct {
	text  string
	marks int
	freq  int
}

func has(words ...string) func(signal) bool {
	kw := textrule.Keywords(words...)
	return func(s signal) bool { return kw(s.text) }
}

var categoryRules = textrule.Table[signal, model.Category]{
	{Name: "high-marks", When: func(s signal) bool { return s.marks >= 12 }, Then: model.CategoryImportant},
	{Name: "trending-long", When: func(s signal) bool {
		return s.marks >= 8 && has("application", "future", "trend", "impact", "recent", "modern", "current")(s)
	}, Then: model.CategoryPredicted},
	{Name: "long", When: func(s signal) bool { return s.marks >= 8 }, Then: model.CategoryImportant},
	{Name: "recurring-medium", When: func(s signal) bool {
		return s.marks >= 5 && (s.freq > 2 || has("basic", "define", "what is", "meaning")(s))
	}, Then: model.CategoryFrequent},
	{Name: "medium", When: func(s signal) bool { return s.marks >= 5 }, Then: model.CategoryModerate},
	{Name: "short", When: textrule.Always[signal], Then: model.CategoryFrequent},
}

var topicStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
}

// Classify assigns categories to records and organizes them into a
// QuestionSet holding exactly 6/6/6/4 questions. Empty input yields an
// empty set.
func Classify(records []model.QuestionRecord) model.QuestionSet {
	return ClassifyFrom(records, string(model.DocMixed))
}

// ClassifyFrom is Classify with the source document type recorded on each question.
func ClassifyFrom(records []model.QuestionRecord, source string) model.QuestionSet {
	if len(records) == 0 {
		return model.QuestionSet{}
	}
	padded := pad(records)

	texts := make([]string, len(padded))
	for i, r := range padded {
		texts[i] = r.Text
	}
	_, freq := similarity.ClusterAndScore(texts)

	classified := make([]model.ClassifiedQuestion, len(padded))
	for i, r := range padded {
		f, ok := freq[r.Text]
		if !ok {
			f = 1
		}
		classified[i] = model.ClassifiedQuestion{
			QuestionRecord: r,
			Category:       categoryRules.EvalOr(signal{text: r.Text, marks: r.Marks, freq: f}, model.CategoryFrequent),
			Confidence:     Confidence(r.Text, f),
			Topic:          Topic(r.Text),
			Difficulty:     DifficultyFor(r.Marks),
			Source:         source,
			MarksWeightage: r.Marks,
		}
	}
	return Organize(classified)
}

// pad cycles the records in order until at least MinQuestions exist.
func pad(records []model.QuestionRecord) []model.QuestionRecord {
	if len(records) >= MinQuestions {
		return records
	}
	out := make([]model.QuestionRecord, MinQuestions)
	for i := range out {
		out[i] = records[i%len(records)]
	}
	return out
}

// Confidence scores a classification from cluster frequency and length.
func Confidence(text string, freq int) float64 {
	c := 0.7 +
		math.Min(float64(freq)*0.1, 0.3) +
		math.Min(float64(len(strings.Fields(text)))/20, 0.1)
	return math.Min(c, 1.0)
}

// DifficultyFor maps a mark-weight to a difficulty.
func DifficultyFor(marks int) model.Difficulty {
	switch {
	case marks >= 12:
		return model.DifficultyHard
	case marks >= 6:
		return model.DifficultyMedium
	}
	return model.DifficultyEasy
}

// Topic returns the first significant word of the question, or "General".
func Topic(text string) string {
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if len([]rune(w)) > 3 && !topicStopWords[w] {
			return w
		}
	}
	return "General"
}

// Organize redistributes classified questions into exact category quotas.
// Each category draws from its keyword pool followed by the questions that
// match no pool, and recycles candidates when it runs short.
func Organize(questions []model.ClassifiedQuestion) model.QuestionSet {
	if len(questions) == 0 {
		return model.QuestionSet{}
	}
	sorted := make([]model.ClassifiedQuestion, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Confidence != sorted[j].Confidence {
			return sorted[i].Confidence > sorted[j].Confidence
		}
		return sorted[i].Difficulty.Rank() > sorted[j].Difficulty.Rank()
	})

	pools := make(map[model.Category][]model.ClassifiedQuestion, len(model.Categories))
	var remaining []model.ClassifiedQuestion
	for _, q := range sorted {
		matched := false
		for _, p := range poolRules {
			if p.When(q.Text) {
				pools[p.Then] = append(pools[p.Then], q)
				matched = true
			}
		}
		if !matched {
			remaining = append(remaining, q)
		}
	}

	var set model.QuestionSet
	for _, c := range model.Categories {
		candidates := make([]model.ClassifiedQuestion, 0, len(pools[c])+len(remaining))
		candidates = append(candidates, pools[c]...)
		candidates = append(candidates, remaining...)
		if len(candidates) == 0 {
			candidates = sorted
		}
		set.SetBucket(c, selectQuota(candidates, c.Quota(), c))
	}
	return set
}

// poolRules are evaluated independently: a question joins every pool it matches.
var poolRules = textrule.Table[string, model.Category]{
	{Name: "frequent", When: textrule.Keywords("define", "what is", "meaning", "introduction", "basic", "explain briefly"), Then: model.CategoryFrequent},
	{Name: "moderate", When: textrule.Keywords("how", "describe", "explain", "process", "method", "steps"), Then: model.CategoryModerate},
	{Name: "important", When: textrule.Keywords("analyze", "compare", "evaluate", "discuss", "critically", "detail"), Then: model.CategoryImportant},
	{Name: "predicted", When: textrule.Keywords("application", "future", "trend", "impact", "recent", "modern", "current"), Then: model.CategoryPredicted},
}

func selectQuota(candidates []model.ClassifiedQuestion, quota int, c model.Category) []model.ClassifiedQuestion {
	selected := make([]model.ClassifiedQuestion, 0, quota)
	used := make(map[string]bool)
	for _, q := range candidates {
		if len(selected) == quota {
			break
		}
		if used[q.Text] {
			continue
		}
		used[q.Text] = true
		q.Category = c
		selected = append(selected, q)
	}
	unique := len(selected)
	for i := 0; len(selected) < quota; i++ {
		q := candidates[i%len(candidates)]
		q.Category = c
		selected = append(selected, q)
	}
	if len(selected) > unique {
		slog.Debug("recycled questions to fill quota", "category", c, "unique", unique, "quota", quota)
	}
	return selected
}
