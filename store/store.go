// Package store keeps a SQLite history of simulated matches.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("match not found")

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id         TEXT PRIMARY KEY,
	black_ai   TEXT NOT NULL,
	white_ai   TEXT NOT NULL,
	black_team TEXT NOT NULL,
	white_team TEXT NOT NULL,
	winner     TEXT NOT NULL CHECK (winner IN ('black', 'white', 'draw')),
	turns      INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	played_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS matches_played_at ON matches (played_at);
`

// Result values stored in the winner column.
const (
	BlackWins = "black"
	WhiteWins = "white"
	Draw      = "draw"
)

type Match struct {
	ID        uuid.UUID
	BlackAI   string
	WhiteAI   string
	BlackTeam string
	WhiteTeam string
	Winner    string
	Turns     int
	Seed      uint64
	PlayedAt  time.Time
}

// Standing aggregates results per AI name over both sides.
type Standing struct {
	AI     string
	Wins   int
	Losses int
	Draws  int
}

type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// RecordMatch stores m, filling in ID and PlayedAt when they are zero.
func (s *Store) RecordMatch(ctx context.Context, m Match) (uuid.UUID, error) {
	switch m.Winner {
	case BlackWins, WhiteWins, Draw:
	default:
		return uuid.Nil, fmt.Errorf("record match: unknown winner %q", m.Winner)
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.PlayedAt.IsZero() {
		m.PlayedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO matches (id, black_ai, white_ai, black_team, white_team, winner, turns, seed, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID.String(), m.BlackAI, m.WhiteAI, m.BlackTeam, m.WhiteTeam, m.Winner, m.Turns,
		int64(m.Seed), m.PlayedAt.UnixMilli(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("record match: %w", err)
	}
	return m.ID, nil
}

func (s *Store) Match(ctx context.Context, id uuid.UUID) (Match, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, black_ai, white_ai, black_team, white_team, winner, turns, seed, played_at
		 FROM matches WHERE id = ?`, id.String())
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Match{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m, err
}

// Recent returns up to limit matches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, black_ai, white_ai, black_team, white_team, winner, turns, seed, played_at
		 FROM matches ORDER BY played_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (Match, error) {
	var (
		m        Match
		id       string
		seed     int64
		playedAt int64
	)
	if err := row.Scan(&id, &m.BlackAI, &m.WhiteAI, &m.BlackTeam, &m.WhiteTeam, &m.Winner, &m.Turns, &seed, &playedAt); err != nil {
		return Match{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Match{}, fmt.Errorf("match id %q: %w", id, err)
	}
	m.ID = parsed
	m.Seed = uint64(seed)
	m.PlayedAt = time.UnixMilli(playedAt)
	return m, nil
}

func (s *Store) Summary(ctx context.Context) ([]Standing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ai, SUM(win), SUM(loss), SUM(draw) FROM (
			SELECT black_ai AS ai, winner = 'black' AS win, winner = 'white' AS loss, winner = 'draw' AS draw FROM matches
			UNION ALL
			SELECT white_ai, winner = 'white', winner = 'black', winner = 'draw' FROM matches
		) GROUP BY ai ORDER BY ai`)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	var out []Standing
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.AI, &st.Wins, &st.Losses, &st.Draws); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
