package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardtab/cardtab/internal/models"
)

// CreatePlayer inserts a new player into the roster.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	// Generate ID if not set
	if player.ID == "" {
		player.ID = uuid.New().String()
	}
	if player.CreatedAt == 0 {
		player.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)",
		player.ID, player.Name, player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player by ID.
func (s *SQLiteStore) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	player := &models.Player{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM players WHERE id = ?",
		playerID,
	).Scan(&player.ID, &player.Name, &player.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %s", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

// ListPlayers retrieves the full roster in insertion order.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	// rowid preserves insertion order even when created_at ties.
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM players ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*models.Player
	for rows.Next() {
		player := &models.Player{}
		if err := rows.Scan(&player.ID, &player.Name, &player.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}

// UpdatePlayerName renames a player.
func (s *SQLiteStore) UpdatePlayerName(ctx context.Context, playerID, name string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE players SET name = ? WHERE id = ?",
		name, playerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player not found: %s", playerID)
	}

	return nil
}

// DeletePlayer removes a player. The schema's foreign keys cascade the
// cleanup: value entries for the player disappear from every round, and
// rounds they banked have banker_id set to NULL.
func (s *SQLiteStore) DeletePlayer(ctx context.Context, playerID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player not found: %s", playerID)
	}

	return nil
}
