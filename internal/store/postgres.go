package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pokernight/stats-api/internal/models"
)

// ErrUnknownPlayer is returned when a player ID was never registered with
// the group. Zero-game players are still known players and do not trigger it.
var ErrUnknownPlayer = errors.New("unknown player")

// DB is the subset of pgxpool.Pool the store needs; tests supply mocks.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// History is the Postgres-backed append-only log of finalized games.
type History struct {
	db DB
}

func NewHistory(db DB) *History {
	return &History{db: db}
}

func (h *History) ListPlayers(ctx context.Context) ([]string, error) {
	rows, err := h.db.Query(ctx, `SELECT player_id FROM players ORDER BY player_id`)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, id)
	}
	return players, rows.Err()
}

// ResultsForPlayer returns the player's full result log, most recent first.
// Unknown IDs fail fast with ErrUnknownPlayer rather than producing an
// empty, degenerate history.
func (h *History) ResultsForPlayer(ctx context.Context, playerID string) ([]models.GameResult, error) {
	var exists bool
	err := h.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM players WHERE player_id = $1)`, playerID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check player %s: %w", playerID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}

	rows, err := h.db.Query(ctx, `
		SELECT game_id, player_id, profit, rebuys, played_on, completed
		FROM game_results
		WHERE player_id = $1
		ORDER BY played_on DESC, id DESC
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query results for %s: %w", playerID, err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func (h *History) ListCompletedGames(ctx context.Context) ([]models.GameResult, error) {
	rows, err := h.db.Query(ctx, `
		SELECT game_id, player_id, profit, rebuys, played_on, completed
		FROM game_results
		WHERE completed
		ORDER BY played_on DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query completed games: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// InsertResults appends one finalized game. Players are registered on first
// sight; re-submitting the same game/player pair is a no-op so retries from
// the ingest path stay safe.
func (h *History) InsertResults(ctx context.Context, game *models.FinalizedGame) error {
	for _, seat := range game.Results {
		if _, err := h.db.Exec(ctx, `
			INSERT INTO players (player_id) VALUES ($1)
			ON CONFLICT (player_id) DO NOTHING
		`, seat.PlayerID); err != nil {
			return fmt.Errorf("register player %s: %w", seat.PlayerID, err)
		}

		if _, err := h.db.Exec(ctx, `
			INSERT INTO game_results (game_id, player_id, profit, rebuys, played_on, completed)
			VALUES ($1, $2, $3, $4, $5, TRUE)
			ON CONFLICT (game_id, player_id) DO NOTHING
		`, game.GameID, seat.PlayerID, seat.Profit, seat.Rebuys, game.Date); err != nil {
			return fmt.Errorf("insert result %s/%s: %w", game.GameID, seat.PlayerID, err)
		}
	}
	return nil
}

func scanResults(rows pgx.Rows) ([]models.GameResult, error) {
	var results []models.GameResult
	for rows.Next() {
		var r models.GameResult
		if err := rows.Scan(&r.GameID, &r.PlayerID, &r.Profit, &r.Rebuys, &r.Date, &r.Completed); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
