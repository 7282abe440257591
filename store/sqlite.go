package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sxyafiq/steamid"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS players (
		steamid INTEGER PRIMARY KEY,
		name    TEXT NOT NULL,
		seen_at INTEGER NOT NULL
	)
`

// SQLite is a Store backed by a SQLite database. The steamid column holds the
// packed value, written through driver.Valuer and read through sql.Scanner.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) the database at dsn and ensures the schema.
func OpenSQLite(ctx context.Context, dsn string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", dsn, err)
	}

	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema in %s: %w", dsn, err)
	}

	logger.Debug("Opened sqlite player index", "dsn", dsn)
	return &SQLite{db: db, logger: logger}, nil
}

// Put implements Store.
func (s *SQLite) Put(ctx context.Context, p Player) error {
	if err := validate(p); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (steamid, name, seen_at) VALUES (?, ?, ?)
		ON CONFLICT(steamid) DO UPDATE SET name = excluded.name, seen_at = excluded.seen_at`,
		p.SteamID, p.Name, p.SeenAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to store player %s: %w", p.SteamID, err)
	}

	s.logger.Debug("Stored player", "steamid", p.SteamID, "name", p.Name)
	return nil
}

// Get implements Store.
func (s *SQLite) Get(ctx context.Context, id steamid.SteamID) (Player, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT steamid, name, seen_at FROM players WHERE steamid = ?", id)

	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Player{}, fmt.Errorf("failed to load player %s: %w", id, err)
	}
	return p, nil
}

// List implements Store.
func (s *SQLite) List(ctx context.Context) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT steamid, name, seen_at FROM players ORDER BY steamid")
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, id steamid.SteamID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE steamid = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.logger.Debug("Deleted player", "steamid", id)
	return nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (Player, error) {
	var (
		p      Player
		seenAt int64
	)
	if err := row.Scan(&p.SteamID, &p.Name, &seenAt); err != nil {
		return Player{}, err
	}
	p.SeenAt = time.UnixMilli(seenAt).UTC()
	return p, nil
}
