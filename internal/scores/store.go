// Package scores keeps the memory game high-score table in SQLite.
package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Score is one finished memory game.
type Score struct {
	ID       uuid.UUID
	PetName  string
	Score    int
	Round    int
	PlayedAt time.Time
}

// Store provides SQLite-backed persistence for scores.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ResolveDBPath returns path, or ~/.config/pou/scores.db when path is empty,
// creating the parent directory.
func ResolveDBPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve db path: home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "pou", "scores.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("resolve db path: create directory: %w", err)
	}
	return path, nil
}

// Open opens the SQLite database at path and migrates it.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// one writer at a time; the game never writes concurrently
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New returns a Store bound to an existing database handle.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// OpenStore resolves path, opens the database and returns a store with its close function.
func OpenStore(path string) (*Store, func(), error) {
	dbPath, err := ResolveDBPath(path)
	if err != nil {
		return nil, nil, err
	}
	db, err := Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	st, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("new store: %w", err)
	}
	return st, func() { _ = db.Close() }, nil
}

// Record inserts sc, filling in its ID and time when unset, and returns the stored row.
func (s *Store) Record(ctx context.Context, sc Score) (Score, error) {
	if s == nil || s.db == nil {
		return Score{}, fmt.Errorf("record score: store is nil")
	}
	if sc.Score < 0 {
		return Score{}, fmt.Errorf("record score: negative score %d", sc.Score)
	}
	if sc.ID == uuid.Nil {
		sc.ID = uuid.New()
	}
	if sc.PlayedAt.IsZero() {
		sc.PlayedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, pet_name, score, round, played_at) VALUES (?, ?, ?, ?, ?)`,
		sc.ID.String(), sc.PetName, sc.Score, sc.Round, sc.PlayedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return Score{}, fmt.Errorf("record score: insert: %w", err)
	}
	return sc, nil
}

// Top returns up to limit scores, best first; ties go to the earlier game.
func (s *Store) Top(ctx context.Context, limit int) ([]Score, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("top scores: store is nil")
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pet_name, score, round, played_at FROM scores ORDER BY score DESC, played_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top scores: query: %w", err)
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("top scores: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top scores: rows: %w", err)
	}
	return out, nil
}

// Best returns the highest score, or ok=false when none is recorded.
func (s *Store) Best(ctx context.Context) (Score, bool, error) {
	top, err := s.Top(ctx, 1)
	if err != nil {
		return Score{}, false, err
	}
	if len(top) == 0 {
		return Score{}, false, nil
	}
	return top[0], true, nil
}

// Count returns the number of recorded games.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("count scores: store is nil")
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count scores: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScore(row scanner) (Score, error) {
	var sc Score
	var id, playedAt string
	if err := row.Scan(&id, &sc.PetName, &sc.Score, &sc.Round, &playedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Score{}, fmt.Errorf("scan: not found")
		}
		return Score{}, fmt.Errorf("scan: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Score{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	sc.ID = parsed

	sc.PlayedAt, err = time.Parse(time.RFC3339Nano, playedAt)
	if err != nil {
		return Score{}, fmt.Errorf("parse played_at %q: %w", playedAt, err)
	}
	return sc, nil
}

// Recorder records finished games for one creature.
type Recorder struct {
	Store   *Store
	PetName string
}

// RecordScore implements memory.Recorder
func (r Recorder) RecordScore(score, round int) error {
	_, err := r.Store.Record(context.Background(), Score{PetName: r.PetName, Score: score, Round: round})
	return err
}
