package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio-cms/internal/content"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore keeps every saved document as a revision row. Load returns the
// newest one.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Revision describes one saved document without its body.
type Revision struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Size      int       `json:"size"`
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One writer keeps SQLite from returning SQLITE_BUSY under the admin API.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*content.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM content_revisions ORDER BY id DESC LIMIT 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	doc := &content.Document{}
	if err := json.Unmarshal([]byte(body), doc); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	return doc, nil
}

func (s *SQLiteStore) Save(ctx context.Context, doc *content.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding content: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO content_revisions (body, created_at) VALUES (?, ?)`,
		string(body), s.now().UTC())
	if err != nil {
		return fmt.Errorf("saving content: %w", err)
	}
	return nil
}

// Revisions lists the newest revisions first.
func (s *SQLiteStore) Revisions(ctx context.Context, limit int) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, length(body)
		FROM content_revisions
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing revisions: %w", err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Size); err != nil {
			return nil, fmt.Errorf("scanning revision: %w", err)
		}
		revs = append(revs, r)
	}
	return revs, rows.Err()
}

// Prune deletes all but the newest keep revisions.
func (s *SQLiteStore) Prune(ctx context.Context, keep int) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM content_revisions
		WHERE id NOT IN (SELECT id FROM content_revisions ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning revisions: %w", err)
	}
	n, _ := result.RowsAffected()
	if n > 0 {
		log.Printf("Removed %d old content revisions", n)
	}
	return n, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
