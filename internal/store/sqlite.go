package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps documents as JSON bodies next to the columns the list
// queries filter on. Timestamps are stored as UTC unix nanoseconds.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dataSourceName.
func NewSQLiteStore(ctx context.Context, dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS preapprovals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		status INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		status_updated_at INTEGER,
		body TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS preapprovals_user_created ON preapprovals (user_id, created_at);
	CREATE TABLE IF NOT EXISTS agents (
		id TEXT PRIMARY KEY,
		body TEXT NOT NULL
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func unixNano(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UTC().UnixNano(), Valid: true}
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id uuid.UUID) (preapproval.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM preapprovals WHERE id = ?`, id.String()).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return preapproval.Document{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return preapproval.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	var doc preapproval.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return preapproval.Document{}, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return doc, nil
}

func (s *SQLiteStore) InsertDocument(ctx context.Context, doc preapproval.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preapprovals (id, user_id, status, created_at, status_updated_at, body) VALUES (?, ?, ?, ?, ?, ?)`,
		doc.ID.String(), doc.UserID.String(), int(doc.Status), doc.CreatedAt.UTC().UnixNano(), unixNano(doc.StatusUpdatedAt), string(body),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("document %s: %w", doc.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ReplaceDocument(ctx context.Context, doc preapproval.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE preapprovals SET user_id = ?, status = ?, created_at = ?, status_updated_at = ?, body = ? WHERE id = ?`,
		doc.UserID.String(), int(doc.Status), doc.CreatedAt.UTC().UnixNano(), unixNano(doc.StatusUpdatedAt), string(body), doc.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) DeleteDocuments(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id.String()
	}
	query := fmt.Sprintf(`DELETE FROM preapprovals WHERE id IN (%s)`, strings.Join(placeholders, ","))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, userID uuid.UUID) ([]preapproval.Document, error) {
	return s.query(ctx, `SELECT body FROM preapprovals WHERE user_id = ?`, userID.String())
}

func (s *SQLiteStore) ListCreatedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]preapproval.Document, error) {
	return s.query(ctx,
		`SELECT body FROM preapprovals WHERE user_id = ? AND created_at >= ? AND created_at < ?`,
		userID.String(), from.UTC().UnixNano(), to.UTC().UnixNano())
}

func (s *SQLiteStore) ListPreApprovedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]preapproval.Document, error) {
	return s.query(ctx,
		`SELECT body FROM preapprovals WHERE user_id = ? AND status = ? AND status_updated_at >= ? AND status_updated_at < ?`,
		userID.String(), int(preapproval.StatusPreApproved), from.UTC().UnixNano(), to.UTC().UnixNano())
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]preapproval.Document, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []preapproval.Document{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		var doc preapproval.Document
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *SQLiteStore) GetAgent(ctx context.Context, id uuid.UUID) (preapproval.Agent, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM agents WHERE id = ?`, id.String()).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return preapproval.Agent{}, fmt.Errorf("agent %s: %w", id, ErrNotFound)
		}
		return preapproval.Agent{}, fmt.Errorf("failed to get agent: %w", err)
	}
	var agent preapproval.Agent
	if err := json.Unmarshal([]byte(body), &agent); err != nil {
		return preapproval.Agent{}, fmt.Errorf("failed to decode agent %s: %w", id, err)
	}
	return agent, nil
}

func (s *SQLiteStore) PutAgent(ctx context.Context, agent preapproval.Agent) error {
	body, err := json.Marshal(agent)
	if err != nil {
		return fmt.Errorf("failed to encode agent: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO agents (id, body) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET body = excluded.body`,
		agent.ID.String(), string(body))
	if err != nil {
		return fmt.Errorf("failed to save agent: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
