package model

import "time"

// Category is one of the four output buckets of a question set.
type Category string

const (
	// CategoryFrequent holds basic questions that recur across papers.
	CategoryFrequent Category = "Frequent"
	// CategoryModerate holds standard questions.
	CategoryModerate Category = "Moderate"
	// CategoryImportant holds high-weightage or complex questions.
	CategoryImportant Category = "Important"
	// CategoryPredicted holds application and trend questions likely to appear next.
	CategoryPredicted Category = "Predicted"
)

// Categories lists the buckets in output order.
var Categories = []Category{CategoryFrequent, CategoryModerate, CategoryImportant, CategoryPredicted}

// Quota returns the exact number of questions a bucket must hold.
func (c Category) Quota() int {
	switch c {
	case CategoryFrequent, CategoryModerate, CategoryImportant:
		return 6
	case CategoryPredicted:
		return 4
	}
	return 0
}

// Difficulty represents question difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Rank orders difficulties from easiest (1) to hardest (3). Unknown values rank as Medium.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 3
	}
	return 2
}

// QuestionRecord is a question recovered from document text.
type QuestionRecord struct {
	Text           string `json:"text"`
	Marks          int    `json:"marks"`
	QuestionNumber int    `json:"question_number"`
	SourceLine     string `json:"source_line"`
	MarksInferred  bool   `json:"marks_inferred"`
}

// ClassifiedQuestion is a QuestionRecord placed in a category.
type ClassifiedQuestion struct {
	QuestionRecord
	Category       Category   `json:"category"`
	Confidence     float64    `json:"confidence_score"`
	Topic          string     `json:"topic"`
	Difficulty     Difficulty `json:"difficulty"`
	Source         string     `json:"source,omitempty"`
	MarksWeightage int        `json:"marks_weightage"`
}

// QuestionSet holds the four fixed-size category buckets.
type QuestionSet struct {
	Frequent  []ClassifiedQuestion `json:"frequent_questions"`
	Moderate  []ClassifiedQuestion `json:"moderate_questions"`
	Important []ClassifiedQuestion `json:"important_questions"`
	Predicted []ClassifiedQuestion `json:"predicted_questions"`
}

// Bucket returns the slice for a category.
func (s *QuestionSet) Bucket(c Category) []ClassifiedQuestion {
	switch c {
	case CategoryFrequent:
		return s.Frequent
	case CategoryModerate:
		return s.Moderate
	case CategoryImportant:
		return s.Important
	case CategoryPredicted:
		return s.Predicted
	}
	return nil
}

// SetBucket replaces the slice for a category.
func (s *QuestionSet) SetBucket(c Category, qs []ClassifiedQuestion) {
	switch c {
	case CategoryFrequent:
		s.Frequent = qs
	case CategoryModerate:
		s.Moderate = qs
	case CategoryImportant:
		s.Important = qs
	case CategoryPredicted:
		s.Predicted = qs
	}
}

// All returns every question in bucket order.
func (s *QuestionSet) All() []ClassifiedQuestion {
	out := make([]ClassifiedQuestion, 0, len(s.Frequent)+len(s.Moderate)+len(s.Important)+len(s.Predicted))
	for _, c := range Categories {
		out = append(out, s.Bucket(c)...)
	}
	return out
}

// Len returns the total number of questions across buckets.
func (s *QuestionSet) Len() int {
	return len(s.Frequent) + len(s.Moderate) + len(s.Important) + len(s.Predicted)
}

// Counts returns per-category sizes keyed by category name.
func (s *QuestionSet) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = len(s.Bucket(c))
	}
	return out
}

// QuizItemType distinguishes quiz item shapes.
type QuizItemType string

const (
	QuizMultipleChoice QuizItemType = "multiple_choice"
	QuizTrueFalse      QuizItemType = "true_false"
)

// QuizItem is a single self-contained quiz question.
type QuizItem struct {
	ID           string       `json:"id"`
	Text         string       `json:"text"`
	Type         QuizItemType `json:"type"`
	Options      []string     `json:"options"`
	CorrectIndex int          `json:"correct_answer"`
	Explanation  string       `json:"explanation"`
	Marks        int          `json:"marks"`
	Topic        string       `json:"topic"`
	Difficulty   string       `json:"difficulty"`
}

// CorrectOption returns the text of the correct option, or "" when the index is out of range.
func (q QuizItem) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// DocumentType describes what kind of study material a document is.
type DocumentType string

const (
	DocPYQ      DocumentType = "pyq"
	DocNotes    DocumentType = "notes"
	DocSyllabus DocumentType = "syllabus"
	DocMixed    DocumentType = "mixed"
)

// Document is uploaded study material reduced to plain text.
type Document struct {
	ID         int64        `json:"id"`
	SessionID  string       `json:"session_id"`
	Filename   string       `json:"filename"`
	Type       DocumentType `json:"document_type"`
	Content    string       `json:"-"`
	Size       int          `json:"size"`
	UploadedAt time.Time    `json:"uploaded_at"`
}

// StudySession groups a subject's documents and generated material.
type StudySession struct {
	ID          string       `json:"session_id"`
	DisplayName string       `json:"display_name"`
	Subject     string       `json:"subject"`
	UserID      string       `json:"user_id"`
	Questions   *QuestionSet `json:"questions,omitempty"`
	Documents   []Document   `json:"documents,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Quiz is a persisted set of quiz items generated for a session.
type Quiz struct {
	ID        string     `json:"quiz_id"`
	SessionID string     `json:"session_id"`
	Items     []QuizItem `json:"questions"`
	TimeLimit int        `json:"time_limit"`
	CreatedAt time.Time  `json:"created_at"`
}
