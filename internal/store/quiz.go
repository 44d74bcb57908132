package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

// SaveQuiz persists generated quiz items. An empty ID is generated.
func (s *Store) SaveQuiz(ctx context.Context, q model.Quiz) (model.Quiz, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.CreatedAt = time.Now().UTC().Truncate(time.Second)
	items, err := json.Marshal(q.Items)
	if err != nil {
		return q, fmt.Errorf("encode quiz items: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, session_id, items_json, time_limit, created_at) VALUES ($1,$2,$3,$4,$5)`,
		q.ID, q.SessionID, string(items), q.TimeLimit, unix(q.CreatedAt),
	)
	if err != nil {
		return q, fmt.Errorf("insert quiz: %w", err)
	}
	return q, nil
}

// GetQuiz returns a stored quiz with its answer keys.
func (s *Store) GetQuiz(ctx context.Context, id string) (model.Quiz, error) {
	var (
		q       model.Quiz
		items   string
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, items_json, time_limit, created_at FROM quizzes WHERE id = $1`, id,
	).Scan(&q.ID, &q.SessionID, &items, &q.TimeLimit, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return q, fmt.Errorf("quiz %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return q, err
	}
	q.CreatedAt = fromUnix(created)
	if err := json.Unmarshal([]byte(items), &q.Items); err != nil {
		return q, fmt.Errorf("decode quiz %s: %w", id, err)
	}
	return q, nil
}

// LatestQuiz returns the most recently generated quiz of a session.
func (s *Store) LatestQuiz(ctx context.Context, sessionID string) (model.Quiz, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM quizzes WHERE session_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, sessionID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Quiz{}, fmt.Errorf("quiz for session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return model.Quiz{}, err
	}
	return s.GetQuiz(ctx, id)
}

// SaveQuizResult persists a scored submission.
func (s *Store) SaveQuizResult(ctx context.Context, r model.QuizResult) error {
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now().UTC()
	}
	buf, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode quiz result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quiz_results (id, quiz_id, session_id, user_id, percentage, result_json, submitted_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.QuizID, r.SessionID, r.UserID, r.Percentage, string(buf), unix(r.SubmittedAt),
	)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

// ListQuizResults returns a session's results oldest first. An empty userID
// returns every user's results.
func (s *Store) ListQuizResults(ctx context.Context, sessionID, userID string) ([]model.QuizResult, error) {
	query := `SELECT result_json FROM quiz_results WHERE session_id = $1`
	args := []any{sessionID}
	if userID != "" {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}
	query += ` ORDER BY submitted_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results := []model.QuizResult{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r model.QuizResult
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decode quiz result: %w", err)
		}
		r.SessionID = sessionID // survives renames
		results = append(results, r)
	}
	return results, rows.Err()
}
