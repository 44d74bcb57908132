package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ateebshaikh21/Thinkora/internal/model"
)

const sessionColumns = `id, display_name, subject, user_id, questions_json, created_at, updated_at`

// CreateSession stores a new session. An empty ID is generated from the subject.
func (s *Store) CreateSession(ctx context.Context, sess model.StudySession) (model.StudySession, error) {
	if sess.ID == "" {
		sess.ID = NewSessionID(sess.Subject)
	}
	if sess.DisplayName == "" {
		sess.DisplayName = sess.Subject
	}
	now := time.Now().UTC().Truncate(time.Second)
	sess.CreatedAt, sess.UpdatedAt = now, now

	qjson, err := encodeQuestions(sess.Questions)
	if err != nil {
		return sess, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO study_sessions (`+sessionColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		sess.ID, sess.DisplayName, sess.Subject, sess.UserID, qjson, unix(now), unix(now),
	)
	if err != nil {
		if exists, _ := s.sessionExists(ctx, s.db, sess.ID); exists {
			return sess, fmt.Errorf("session %s: %w", sess.ID, ErrConflict)
		}
		return sess, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// GetSession returns a session with its documents.
func (s *Store) GetSession(ctx context.Context, id string) (model.StudySession, error) {
	sess, err := scanSession(s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM study_sessions WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return sess, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return sess, err
	}
	sess.Documents, err = s.ListDocuments(ctx, id)
	return sess, err
}

// ListSessions returns sessions newest first, optionally filtered by user and subject.
// Documents are not loaded.
func (s *Store) ListSessions(ctx context.Context, userID, subject string) ([]model.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE 1=1`
	var args []any
	if userID != "" {
		args = append(args, userID)
		query += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	if subject != "" {
		args = append(args, subject)
		query += fmt.Sprintf(` AND subject = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := []model.StudySession{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SaveQuestionSet replaces the classified questions of a session.
func (s *Store) SaveQuestionSet(ctx context.Context, id string, set model.QuestionSet) error {
	qjson, err := encodeQuestions(&set)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE study_sessions SET questions_json = $1, updated_at = $2 WHERE id = $3`,
		qjson, unix(time.Now()), id,
	)
	if err != nil {
		return err
	}
	return affected(res, "session "+id)
}

// DeleteSession removes a session together with its documents, quizzes and results.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"documents", "quizzes", "quiz_results"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE session_id = $1`, id); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err := affected(res, "session "+id); err != nil {
		return err
	}
	return tx.Commit()
}

// RenameSession moves a session and everything attached to it to a new ID.
// The new ID is cleaned first; the renamed session is returned.
func (s *Store) RenameSession(ctx context.Context, oldID, newID string) (model.StudySession, error) {
	newID = CleanID(newID)
	if newID == "" {
		return model.StudySession{}, fmt.Errorf("new session id is empty after cleaning")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.StudySession{}, err
	}
	defer tx.Rollback()

	if exists, err := s.sessionExists(ctx, tx, oldID); err != nil {
		return model.StudySession{}, err
	} else if !exists {
		return model.StudySession{}, fmt.Errorf("session %s: %w", oldID, ErrNotFound)
	}
	if newID != oldID {
		if exists, err := s.sessionExists(ctx, tx, newID); err != nil {
			return model.StudySession{}, err
		} else if exists {
			return model.StudySession{}, fmt.Errorf("session %s: %w", newID, ErrConflict)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE study_sessions SET id = $1, display_name = $2, updated_at = $3 WHERE id = $4`,
		newID, DisplayName(newID), unix(time.Now()), oldID,
	)
	if err != nil {
		return model.StudySession{}, fmt.Errorf("rename session: %w", err)
	}
	for _, table := range []string{"documents", "quizzes", "quiz_results"} {
		if _, err := tx.ExecContext(ctx, `UPDATE `+table+` SET session_id = $1 WHERE session_id = $2`, newID, oldID); err != nil {
			return model.StudySession{}, fmt.Errorf("rename %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return model.StudySession{}, err
	}
	return s.GetSession(ctx, newID)
}

// AddDocument attaches extracted document text to a session.
func (s *Store) AddDocument(ctx context.Context, doc model.Document) (model.Document, error) {
	doc.UploadedAt = time.Now().UTC().Truncate(time.Second)
	if doc.Size == 0 {
		doc.Size = len(doc.Content)
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO documents (session_id, filename, document_type, content, size, uploaded_at)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		doc.SessionID, doc.Filename, doc.Type, doc.Content, doc.Size, unix(doc.UploadedAt),
	).Scan(&doc.ID)
	if err != nil {
		return doc, fmt.Errorf("insert document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `UPDATE study_sessions SET updated_at = $1 WHERE id = $2`, unix(doc.UploadedAt), doc.SessionID)
	return doc, err
}

// ListDocuments returns a session's documents in upload order, content included.
func (s *Store) ListDocuments(ctx context.Context, sessionID string) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, filename, document_type, content, size, uploaded_at
		 FROM documents WHERE session_id = $1 ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	docs := []model.Document{}
	for rows.Next() {
		var (
			d  model.Document
			at int64
		)
		if err := rows.Scan(&d.ID, &d.SessionID, &d.Filename, &d.Type, &d.Content, &d.Size, &at); err != nil {
			return nil, err
		}
		d.UploadedAt = fromUnix(at)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) sessionExists(ctx context.Context, q querier, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM study_sessions WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (model.StudySession, error) {
	var (
		sess             model.StudySession
		qjson            sql.NullString
		created, updated int64
	)
	if err := row.Scan(&sess.ID, &sess.DisplayName, &sess.Subject, &sess.UserID, &qjson, &created, &updated); err != nil {
		return sess, err
	}
	sess.CreatedAt, sess.UpdatedAt = fromUnix(created), fromUnix(updated)
	if qjson.Valid && qjson.String != "" {
		var set model.QuestionSet
		if err := json.Unmarshal([]byte(qjson.String), &set); err != nil {
			return sess, fmt.Errorf("decode questions of %s: %w", sess.ID, err)
		}
		sess.Questions = &set
	}
	return sess, nil
}

func encodeQuestions(set *model.QuestionSet) (sql.NullString, error) {
	if set == nil {
		return sql.NullString{}, nil
	}
	buf, err := json.Marshal(set)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode questions: %w", err)
	}
	return sql.NullString{String: string(buf), Valid: true}, nil
}

func affected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
