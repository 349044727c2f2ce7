// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/cardtab/cardtab/internal/models"
)

// Store defines the interface for roster and round storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// The store owns the cascading edits the engine assumes have already
// happened: deleting a player removes their value entries from every round
// and clears the banker slot on rounds they banked.
type Store interface {
	// CreatePlayer persists a new player. ID and CreatedAt are populated
	// by the store when unset.
	CreatePlayer(ctx context.Context, player *models.Player) error

	// GetPlayer retrieves a player by ID. Returns an error if not found.
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)

	// ListPlayers retrieves the full roster in insertion order.
	ListPlayers(ctx context.Context) ([]*models.Player, error)

	// UpdatePlayerName renames a player. Returns an error if not found.
	UpdatePlayerName(ctx context.Context, playerID, name string) error

	// DeletePlayer removes a player and cascades: their entries vanish
	// from all rounds, and rounds they banked lose their banker.
	DeletePlayer(ctx context.Context, playerID string) error

	// CreateRound appends a new round. ID, Seq, and CreatedAt are
	// populated by the store; when BankerID is unset the round inherits
	// the newest existing round's banker as a default.
	CreateRound(ctx context.Context, round *models.Round) error

	// GetRound retrieves a round by ID, including its value entries.
	GetRound(ctx context.Context, roundID string) (*models.Round, error)

	// ListRounds retrieves all rounds in sequence order.
	ListRounds(ctx context.Context) ([]*models.Round, error)

	// SetRoundBanker assigns the round's banker and drops any value entry
	// stored for that player (a round never holds its banker's value).
	SetRoundBanker(ctx context.Context, roundID, bankerID string) error

	// SetRoundValue upserts one player's entered amount for a round.
	// An amount of 0 removes the entry.
	SetRoundValue(ctx context.Context, roundID, playerID string, amount int64) error

	// DeleteRound removes a round and its value entries. Sibling rounds
	// keep their identities and sequence numbers.
	DeleteRound(ctx context.Context, roundID string) error

	// Close releases any resources held by the store.
	Close() error
}
