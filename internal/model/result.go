package model

import "time"

// QuizSubmission is a user's set of answers for a quiz.
type QuizSubmission struct {
	QuizID    string         `json:"quiz_id"`
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	Answers   map[string]int `json:"answers"`
	TimeTaken int            `json:"time_taken"`
}

// TopicScore tallies correct answers for one topic.
type TopicScore struct {
	Topic      string  `json:"topic"`
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// ItemResult is the outcome for one quiz item.
type ItemResult struct {
	QuestionID    string `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    *int   `json:"user_answer"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
	Topic         string `json:"topic"`
	Marks         int    `json:"marks"`
}

// Feedback is the learner-facing assessment of a quiz attempt.
type Feedback struct {
	OverallAssessment string   `json:"overall_assessment"`
	MasteryLevel      string   `json:"mastery_level"`
	LearningStatus    string   `json:"learning_status"`
	LearningMessage   string   `json:"learning_message"`
	Recommendation    string   `json:"recommendation"`
	TimeFeedback      string   `json:"time_feedback"`
	Suggestions       []string `json:"suggestions"`
	TopicFeedback     []string `json:"topic_feedback"`
	ReadyToAdvance    bool     `json:"ready_to_advance"`
}

// QuizResult is a scored quiz attempt.
type QuizResult struct {
	ID             string       `json:"result_id"`
	QuizID         string       `json:"quiz_id"`
	SessionID      string       `json:"session_id"`
	UserID         string       `json:"user_id"`
	EarnedMarks    int          `json:"earned_marks"`
	TotalMarks     int          `json:"total_marks"`
	Correct        int          `json:"correct_answers"`
	TotalQuestions int          `json:"total_questions"`
	Percentage     float64      `json:"percentage"`
	Grade          string       `json:"grade"`
	TimeTaken      int          `json:"time_taken"`
	Topics         []TopicScore `json:"topic_performance"`
	WeakAreas      []string     `json:"weak_areas"`
	StrongAreas    []string     `json:"strong_areas"`
	Items          []ItemResult `json:"detailed_results,omitempty"`
	Feedback       Feedback     `json:"ai_feedback"`
	SubmittedAt    time.Time    `json:"submitted_at"`
}

// QuizHistory summarizes a user's attempts for a session.
type QuizHistory struct {
	Attempts      []QuizResult `json:"quiz_history"`
	TotalAttempts int          `json:"total_attempts"`
	BestScore     float64      `json:"best_score"`
	AverageScore  float64      `json:"average_score"`
	LatestAttempt *QuizResult  `json:"latest_attempt"`
	Improvement   float64      `json:"improvement_trend"`
}
