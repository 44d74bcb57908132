// Package analysis runs the document-to-question-set pipeline.
package analysis

import (
	"log/slog"
	"strings"

	"github.com/Ateebshaikh21/Thinkora/internal/classify"
	"github.com/Ateebshaikh21/Thinkora/internal/extract"
	"github.com/Ateebshaikh21/Thinkora/internal/model"
	"github.com/Ateebshaikh21/Thinkora/internal/textrule"
)

// Report summarizes an analysis run.
type Report struct {
	QuestionsExtracted int                    `json:"questions_extracted"`
	UniqueQuestions    int                    `json:"unique_questions"`
	Questions          model.QuestionSet      `json:"questions"`
	Counts             map[model.Category]int `json:"categories"`
	DocumentTypes      []model.DocumentType   `json:"document_types"`
}

// DocumentType guesses what kind of material a file holds from its name.
func DocumentType(filename string) model.DocumentType {
	name := strings.ToLower(filename)
	switch {
	case textrule.ContainsAny(name, []string{"pyq", "previous", "past", "question"}):
		return model.DocPYQ
	case textrule.ContainsAny(name, []string{"note", "lecture", "chapter"}):
		return model.DocNotes
	case textrule.ContainsAny(name, []string{"syllabus", "curriculum", "outline"}):
		return model.DocSyllabus
	}
	return model.DocMixed
}

// Analyze extracts questions from every document in order, drops exact
// duplicate texts, and classifies the remainder into a question set.
func Analyze(docs []model.Document) Report {
	var (
		all   []model.QuestionRecord
		types []model.DocumentType
		seen  = make(map[string]bool)
		uniq  []model.QuestionRecord
	)
	for _, d := range docs {
		types = append(types, d.Type)
		recs := extract.Extract(d.Content)
		slog.Debug("extracted document", "file", d.Filename, "type", d.Type, "questions", len(recs))
		all = append(all, recs...)
	}
	for _, r := range all {
		if seen[r.Text] {
			continue
		}
		seen[r.Text] = true
		uniq = append(uniq, r)
	}

	set := classify.ClassifyFrom(uniq, string(sourceType(types)))
	return Report{
		QuestionsExtracted: len(all),
		UniqueQuestions:    len(uniq),
		Questions:          set,
		Counts:             set.Counts(),
		DocumentTypes:      types,
	}
}

// sourceType is the shared type of all documents, or mixed when they differ.
func sourceType(types []model.DocumentType) model.DocumentType {
	if len(types) == 0 {
		return model.DocMixed
	}
	for _, t := range types[1:] {
		if t != types[0] {
			return model.DocMixed
		}
	}
	return types[0]
}

// Content joins document texts for quiz synthesis.
func Content(docs []model.Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, "\n\n")
}
