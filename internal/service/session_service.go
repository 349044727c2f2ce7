// Package service exposes session operations over the store and the engine.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cardtab/cardtab/internal/engine"
	"github.com/cardtab/cardtab/internal/models"
	"github.com/cardtab/cardtab/internal/storage"
)

// PlayerBalance is one player's running total, in roster order.
type PlayerBalance struct {
	PlayerID string `json:"playerId"`
	Amount   int64  `json:"amount"`
}

// SettlementPlan is the minimizer's output plus the per-person summary.
type SettlementPlan struct {
	Transactions []engine.Transaction      `json:"transactions"`
	Persons      []engine.PersonSettlement `json:"persons"`
}

// SessionService manages the roster and round list and serves the derived
// views. All derived data is recomputed from the store on every read; the
// service holds no state between calls.
type SessionService struct {
	store storage.Store
}

// NewSessionService creates a new SessionService with the given storage backend.
func NewSessionService(store storage.Store) *SessionService {
	return &SessionService{store: store}
}

// AddPlayer adds a player to the roster.
func (s *SessionService) AddPlayer(ctx context.Context, name string) (*models.Player, error) {
	if name == "" {
		return nil, fmt.Errorf("player name required")
	}

	player := &models.Player{Name: name}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}

	slog.Info("Player added", "player_id", player.ID, "name", player.Name)
	return player, nil
}

// ListPlayers returns the roster in insertion order.
func (s *SessionService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	return s.store.ListPlayers(ctx)
}

// RenamePlayer changes a player's display name. Identity is untouched.
func (s *SessionService) RenamePlayer(ctx context.Context, playerID, name string) (*models.Player, error) {
	if name == "" {
		return nil, fmt.Errorf("player name required")
	}

	if err := s.store.UpdatePlayerName(ctx, playerID, name); err != nil {
		return nil, err
	}

	slog.Info("Player renamed", "player_id", playerID, "name", name)
	return s.store.GetPlayer(ctx, playerID)
}

// RemovePlayer deletes a player. The store cascades the cleanup: the
// player's entries vanish from all rounds and rounds they banked lose their
// banker, so downstream aggregates never see the id again.
func (s *SessionService) RemovePlayer(ctx context.Context, playerID string) error {
	if err := s.store.DeletePlayer(ctx, playerID); err != nil {
		return err
	}

	slog.Info("Player removed", "player_id", playerID)
	return nil
}

// CreateRound appends a round. When bankerID is empty the round inherits the
// newest round's banker; when given, the banker must be on the roster.
func (s *SessionService) CreateRound(ctx context.Context, bankerID string) (*models.Round, error) {
	if bankerID != "" {
		if _, err := s.store.GetPlayer(ctx, bankerID); err != nil {
			return nil, fmt.Errorf("banker not on roster: %w", err)
		}
	}

	round := &models.Round{BankerID: bankerID}
	if err := s.store.CreateRound(ctx, round); err != nil {
		return nil, err
	}

	slog.Info("Round created", "round_id", round.ID, "seq", round.Seq, "banker_id", round.BankerID)
	return round, nil
}

// ListRounds returns all rounds in sequence order.
func (s *SessionService) ListRounds(ctx context.Context) ([]*models.Round, error) {
	return s.store.ListRounds(ctx)
}

// SetBanker assigns a round's banker.
func (s *SessionService) SetBanker(ctx context.Context, roundID, bankerID string) (*models.Round, error) {
	if bankerID != "" {
		if _, err := s.store.GetPlayer(ctx, bankerID); err != nil {
			return nil, fmt.Errorf("banker not on roster: %w", err)
		}
	}

	if err := s.store.SetRoundBanker(ctx, roundID, bankerID); err != nil {
		return nil, err
	}

	slog.Info("Round banker set", "round_id", roundID, "banker_id", bankerID)
	return s.store.GetRound(ctx, roundID)
}

// SetValue records a player's signed amount for a round. The round's current
// banker cannot carry an entered value; their amount is always implied.
func (s *SessionService) SetValue(ctx context.Context, roundID, playerID string, amount int64) (*models.Round, error) {
	round, err := s.store.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetPlayer(ctx, playerID); err != nil {
		return nil, fmt.Errorf("player not on roster: %w", err)
	}
	if playerID == round.BankerID {
		return nil, fmt.Errorf("banker's value is implied and cannot be entered")
	}

	if err := s.store.SetRoundValue(ctx, roundID, playerID, amount); err != nil {
		return nil, err
	}

	slog.Info("Round value set", "round_id", roundID, "player_id", playerID, "amount", amount)
	return s.store.GetRound(ctx, roundID)
}

// DeleteRound removes a round.
func (s *SessionService) DeleteRound(ctx context.Context, roundID string) error {
	if err := s.store.DeleteRound(ctx, roundID); err != nil {
		return err
	}

	slog.Info("Round deleted", "round_id", roundID)
	return nil
}

// GetBalances recomputes every player's running total, in roster order.
func (s *SessionService) GetBalances(ctx context.Context) ([]PlayerBalance, error) {
	roster, rounds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	totals := engine.Balances(roster, rounds)
	balances := make([]PlayerBalance, len(roster))
	for i, p := range roster {
		balances[i] = PlayerBalance{PlayerID: p.ID, Amount: totals[p.ID]}
	}
	return balances, nil
}

// GetLedger recomputes the per-round debt ledger.
func (s *SessionService) GetLedger(ctx context.Context) ([]engine.DebtItem, error) {
	roster, rounds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ExpandDebts(roster, rounds), nil
}

// GetSettlement recomputes the settlement plan and per-person summary from
// the final balances.
func (s *SessionService) GetSettlement(ctx context.Context) (*SettlementPlan, error) {
	roster, rounds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	txns := engine.Settle(roster, engine.Balances(roster, rounds))
	plan := &SettlementPlan{
		Transactions: txns,
		Persons:      engine.Summarize(roster, txns),
	}

	slog.Debug("Settlement computed",
		"players", len(roster),
		"rounds", len(rounds),
		"transactions", len(txns),
	)
	return plan, nil
}

// load fetches the roster and round list for one computation pass.
func (s *SessionService) load(ctx context.Context) ([]models.Player, []models.Round, error) {
	playerRefs, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, nil, err
	}
	roundRefs, err := s.store.ListRounds(ctx)
	if err != nil {
		return nil, nil, err
	}

	roster := make([]models.Player, len(playerRefs))
	for i, p := range playerRefs {
		roster[i] = *p
	}
	rounds := make([]models.Round, len(roundRefs))
	for i, r := range roundRefs {
		rounds[i] = *r
	}
	return roster, rounds, nil
}
