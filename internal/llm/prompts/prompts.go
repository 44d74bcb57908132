// Package prompts renders the explanation prompts sent to the LLM.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"
)

//go:embed templates/*.txt
var templateFS embed.FS

// Kind selects an explanation style.
type Kind string

const (
	KindDetailed Kind = "detailed"
	KindShort    Kind = "short"
	KindTips     Kind = "tips"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindDetailed, KindShort, KindTips}

// Valid reports whether k names a template.
func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// Data holds template data for a prompt.
type Data struct {
	Question string
	Subject  string
	Marks    int
	WordsMin int
	WordsMax int
}

const maxQuestionRunes = 4000

var questionTagRegex = regexp.MustCompile(`(?i)</?\s*question\b[^>]*>`)

var (
	loadOnce  sync.Once
	loadErr   error
	templates map[Kind]*template.Template
)

func load() error {
	loadOnce.Do(func() {
		templates = make(map[Kind]*template.Template, len(Kinds))
		for _, k := range Kinds {
			name := "templates/" + string(k) + ".txt"
			content, err := templateFS.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("read prompt file %s: %w", name, err)
				return
			}
			tmpl, err := template.New(string(k)).Parse(string(content))
			if err != nil {
				loadErr = fmt.Errorf("parse prompt template %s: %w", name, err)
				return
			}
			templates[k] = tmpl
		}
	})
	return loadErr
}

// Build renders the prompt for kind.
func Build(kind Kind, data Data) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	tmpl, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("invalid explanation kind: %q", kind)
	}
	data.Question = sanitizeQuestion(data.Question)
	if strings.TrimSpace(data.Subject) == "" {
		data.Subject = "general"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sanitizeQuestion strips tags that could close the question block early
// and truncates very long input.
func sanitizeQuestion(q string) string {
	q = strings.TrimSpace(questionTagRegex.ReplaceAllString(q, ""))
	if utf8.RuneCountInString(q) > maxQuestionRunes {
		q = string([]rune(q)[:maxQuestionRunes]) + " [truncated]"
	}
	return q
}
