package quizgen

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Ateebshaikh21/Thinkora/internal/textrule"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	whatIsRe     = regexp.MustCompile(`what is\s+([^?]+)`)
	defineRe     = regexp.MustCompile(`define\s+([^?.]+)`)
)

var (
	termConnectives    = []string{`\s+is\s+`, `\s+are\s+`, `\s*:\s*`, `\s+refers?\s+to\s+`, `\s+means?\s+`}
	conceptConnectives = []string{`\s+is\s+`, `\s+are\s+`, `\s*:\s*`}
	definitionMarkers  = []string{" is ", " are ", " means ", " refers to "}
)

const fallbackAnswer = "The answer based on the provided content"

// FindAnswer locates the answer to question inside content. It tries, in
// order: text following the question itself, a definition of the term the
// question asks about, a definition of concept, and the first definitional
// sentence mentioning either. When nothing fits it returns a templated
// answer naming the term or concept.
func FindAnswer(question, content, concept string) string {
	if a, ok := answerAfterQuestion(question, content); ok {
		return a
	}

	term := questionTerm(question)
	if term != "" {
		if a, ok := definition(content, term, termConnectives); ok {
			return Capitalize(a)
		}
	}
	if concept != "" {
		if a, ok := definition(content, strings.ToLower(concept), conceptConnectives); ok {
			return Capitalize(a)
		}
	}

	for _, s := range sentences(content) {
		lower := strings.ToLower(s)
		if !textrule.ContainsAny(lower, definitionMarkers) {
			continue
		}
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return Capitalize(s)
		}
		if concept != "" && strings.Contains(lower, strings.ToLower(concept)) {
			return Capitalize(s)
		}
	}

	switch {
	case term != "":
		return fmt.Sprintf("The definition of %s as described in the material", term)
	case concept != "":
		return fmt.Sprintf("A key concept related to %s in the subject matter", concept)
	}
	return fallbackAnswer
}

func answerAfterQuestion(question, content string) (string, bool) {
	cleaned := strings.TrimRight(strings.TrimRight(strings.TrimSpace(question), "?"), ".")
	if cleaned == "" {
		return "", false
	}
	q := regexp.QuoteMeta(cleaned)
	patterns := []string{
		`(?is)` + q + `\s*\??\s*\n([^?]+?)(?:\n\d+\.|\n[a-z]|$)`,
		`(?is)` + q + `\s*\??\s*([^?]+?)(?:\n\d+\.|\n[a-z]|$)`,
		`(?is)` + q + `\s*\??\s*\n?([^?]+?)(?:\n|$)`,
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		if a := collapse(m[1]); fits(a) {
			return a, true
		}
	}
	return "", false
}

// questionTerm pulls the subject of a "what is" or "define" question.
func questionTerm(question string) string {
	lower := strings.ToLower(question)
	var m []string
	switch {
	case strings.Contains(lower, "what is"):
		m = whatIsRe.FindStringSubmatch(lower)
	case strings.Contains(lower, "define"):
		m = defineRe.FindStringSubmatch(lower)
	}
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// definition captures the single sentence that follows subject and one of connectives.
func definition(content, subject string, connectives []string) (string, bool) {
	q := regexp.QuoteMeta(subject)
	for _, c := range connectives {
		re, err := regexp.Compile(`(?i)` + q + c + `([^.!?]+)`)
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		if d := collapse(m[1]); fits(d) {
			return d, true
		}
	}
	return "", false
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func fits(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 10 && n < 200
}

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
