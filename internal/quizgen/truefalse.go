package quizgen

import (
	"regexp"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

type inversion struct {
	re          *regexp.Regexp
	replacement string
}

func invert(word, replacement string) inversion {
	return inversion{re: regexp.MustCompile(`(?i)\b` + word + `\b`), replacement: replacement}
}

// Ordered: the first word present in a statement is the one negated.
var inversions = []inversion{
	invert("is", "is not"),
	invert("can", "cannot"),
	invert("will", "will not"),
	invert("always", "never"),
	invert("all", "no"),
	invert("increase", "decrease"),
	invert("improve", "worsen"),
}

// Falsify negates statement by replacing the first occurrence of the
// highest-priority invertible word, or returns it unchanged when no word
// applies.
func Falsify(statement string) string {
	for _, inv := range inversions {
		loc := inv.re.FindStringIndex(statement)
		if loc != nil {
			return statement[:loc[0]] + inv.replacement + statement[loc[1]:]
		}
	}
	return statement
}

// TrueFalse builds a true/false item from statement. A coin flip decides
// whether the statement is kept or falsified; a statement that cannot be
// falsified is kept true.
func (s *Synthesizer) TrueFalse(statement string) model.QuizItem {
	isTrue := s.rng.IntN(2) == 0
	if !isTrue {
		if f := Falsify(statement); f != statement {
			statement = f
		} else {
			isTrue = true
		}
	}
	correct, verdict := 0, "true"
	if !isTrue {
		correct, verdict = 1, "false"
	}
	return model.QuizItem{
		ID:           s.newID(),
		Text:         "True or False: " + statement,
		Type:         model.QuizTrueFalse,
		Options:      []string{"True", "False"},
		CorrectIndex: correct,
		Explanation:  "This statement is " + verdict + " based on the content.",
		Marks:        1,
		Topic:        "General",
		Difficulty:   "easy",
	}
}

// SynthesizeTrueFalse builds up to n true/false items from the factual
// sentences in content.
func (s *Synthesizer) SynthesizeTrueFalse(content string, n int) []model.QuizItem {
	facts := Facts(content)
	n = max(n, 0)
	if n < len(facts) {
		facts = facts[:n]
	}
	items := make([]model.QuizItem, 0, len(facts))
	for _, f := range facts {
		items = append(items, s.TrueFalse(f))
	}
	return items
}
