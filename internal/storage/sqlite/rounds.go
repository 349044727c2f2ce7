package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardtab/cardtab/internal/models"
)

// CreateRound appends a new round. It assigns the next sequence number and,
// when no banker is given, inherits the newest round's banker as a default.
func (s *SQLiteStore) CreateRound(ctx context.Context, round *models.Round) error {
	// Generate IDs if not set
	if round.ID == "" {
		round.ID = uuid.New().String()
	}
	if round.CreatedAt == 0 {
		round.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Inherit the previous round's banker as a default
	if round.BankerID == "" {
		var banker sql.NullString
		err := tx.QueryRowContext(ctx,
			"SELECT banker_id FROM rounds ORDER BY seq DESC LIMIT 1",
		).Scan(&banker)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("failed to look up previous banker: %w", err)
		}
		if banker.Valid {
			round.BankerID = banker.String
		}
	}

	// Next sequence number
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM rounds",
	).Scan(&round.Seq); err != nil {
		return fmt.Errorf("failed to assign sequence number: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rounds (id, seq, banker_id, created_at) VALUES (?, ?, ?, ?)",
		round.ID, round.Seq, nullableID(round.BankerID), round.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}

	// Insert any pre-filled value entries
	for playerID, amount := range round.Values {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO round_values (round_id, player_id, amount) VALUES (?, ?, ?)",
			round.ID, playerID, amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert round value: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRound retrieves a round by ID, including its value entries.
func (s *SQLiteStore) GetRound(ctx context.Context, roundID string) (*models.Round, error) {
	round := &models.Round{}
	var banker sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT id, seq, banker_id, created_at FROM rounds WHERE id = ?",
		roundID,
	).Scan(&round.ID, &round.Seq, &banker, &round.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("round not found: %s", roundID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if banker.Valid {
		round.BankerID = banker.String
	}

	round.Values, err = s.roundValues(ctx, round.ID)
	if err != nil {
		return nil, err
	}

	return round, nil
}

// ListRounds retrieves all rounds in sequence order.
func (s *SQLiteStore) ListRounds(ctx context.Context) ([]*models.Round, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, seq, banker_id, created_at FROM rounds ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*models.Round
	for rows.Next() {
		round := &models.Round{}
		var banker sql.NullString
		if err := rows.Scan(&round.ID, &round.Seq, &banker, &round.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if banker.Valid {
			round.BankerID = banker.String
		}
		rounds = append(rounds, round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rounds: %w", err)
	}

	for _, round := range rounds {
		round.Values, err = s.roundValues(ctx, round.ID)
		if err != nil {
			return nil, err
		}
	}

	return rounds, nil
}

// SetRoundBanker assigns the round's banker and drops any value entry stored
// for that player, keeping the invariant that a round never holds its own
// banker's value.
func (s *SQLiteStore) SetRoundBanker(ctx context.Context, roundID, bankerID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE rounds SET banker_id = ? WHERE id = ?",
		nullableID(bankerID), roundID,
	)
	if err != nil {
		return fmt.Errorf("failed to set banker: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("round not found: %s", roundID)
	}

	if bankerID != "" {
		_, err = tx.ExecContext(ctx,
			"DELETE FROM round_values WHERE round_id = ? AND player_id = ?",
			roundID, bankerID,
		)
		if err != nil {
			return fmt.Errorf("failed to drop banker value: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetRoundValue upserts one player's entered amount for a round. An amount
// of 0 removes the entry instead, so partially-cleared rows do not linger.
func (s *SQLiteStore) SetRoundValue(ctx context.Context, roundID, playerID string, amount int64) error {
	if amount == 0 {
		_, err := s.db.ExecContext(ctx,
			"DELETE FROM round_values WHERE round_id = ? AND player_id = ?",
			roundID, playerID,
		)
		if err != nil {
			return fmt.Errorf("failed to clear round value: %w", err)
		}
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO round_values (round_id, player_id, amount) VALUES (?, ?, ?)
		 ON CONFLICT (round_id, player_id) DO UPDATE SET amount = excluded.amount`,
		roundID, playerID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to set round value: %w", err)
	}

	return nil
}

// DeleteRound removes a round and its value entries. Sequence numbers of
// sibling rounds are untouched; only display positions shift.
func (s *SQLiteStore) DeleteRound(ctx context.Context, roundID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM rounds WHERE id = ?", roundID)
	if err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("round not found: %s", roundID)
	}

	return nil
}

// roundValues loads the value entries for one round.
func (s *SQLiteStore) roundValues(ctx context.Context, roundID string) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player_id, amount FROM round_values WHERE round_id = ?",
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get round values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]int64)
	for rows.Next() {
		var playerID string
		var amount int64
		if err := rows.Scan(&playerID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan round value: %w", err)
		}
		values[playerID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate round values: %w", err)
	}

	return values, nil
}

// nullableID converts an empty ID to NULL for columns with foreign keys.
func nullableID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}
