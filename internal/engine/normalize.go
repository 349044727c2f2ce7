// Package engine implements the settlement pipeline: round normalization,
// balance aggregation, per-round debt expansion, and greedy settlement.
//
// Every function is pure. The engine holds no state, never mutates its
// inputs, and is recomputed from the roster and round list on every read.
// Amounts are int64 minor units throughout.
package engine

import "github.com/cardtab/cardtab/internal/models"

// DebtItem restates one non-banker entry of one round as a directed payment
// between the round's banker and a participant. It is informational (ledger
// display, export) and never feeds back into balance aggregation.
type DebtItem struct {
	RoundIndex int    `json:"roundIndex"` // 1-based position in round order
	BankerID   string `json:"bankerId"`
	FromID     string `json:"fromId"`
	ToID       string `json:"toId"`
	Amount     int64  `json:"amount"` // always > 0
}

// bankerSet reports whether the round has a banker who is still on the
// roster. Rounds failing this check contribute nothing downstream, including
// the unresolved case of a banker who was later removed.
func bankerSet(round models.Round, roster []models.Player) bool {
	if round.BankerID == "" {
		return false
	}
	for _, p := range roster {
		if p.ID == round.BankerID {
			return true
		}
	}
	return false
}

// Normalize fills in the banker's implied value for one round, producing a
// complete zero-sum mapping over the current roster.
//
// The banker's entry is the negative sum of every other roster player's
// entered value, with missing entries counting as 0. Entries for players no
// longer on the roster are stale and ignored. Returns nil when the round has
// no usable banker; such rounds are no-ops everywhere downstream.
func Normalize(round models.Round, roster []models.Player) map[string]int64 {
	if !bankerSet(round, roster) {
		return nil
	}

	normalized := make(map[string]int64, len(roster))
	var sum int64
	for _, p := range roster {
		if p.ID == round.BankerID {
			continue
		}
		v := round.Values[p.ID]
		normalized[p.ID] = v
		sum += v
	}
	normalized[round.BankerID] = -sum

	return normalized
}

// Balances folds every round's normalized values into a running total per
// roster player.
//
// The result has an entry (possibly 0) for every current roster player and
// no one else, so removed players vanish from the output even if stale round
// data still references them. Round order does not affect the result.
func Balances(roster []models.Player, rounds []models.Round) map[string]int64 {
	totals := make(map[string]int64, len(roster))
	for _, p := range roster {
		totals[p.ID] = 0
	}

	for _, round := range rounds {
		for id, v := range Normalize(round, roster) {
			totals[id] += v
		}
	}

	return totals
}

// ExpandDebts restates every round as directed pay/receive records between
// the round's banker and each participant with a non-zero entry.
//
// A positive entered value means the banker pays the player; negative means
// the player pays the banker. Output is grouped by round in sequence order
// and by roster order within a round. Rounds without a usable banker and
// zero entries produce nothing.
func ExpandDebts(roster []models.Player, rounds []models.Round) []DebtItem {
	var items []DebtItem
	for i, round := range rounds {
		if !bankerSet(round, roster) {
			continue
		}
		for _, p := range roster {
			if p.ID == round.BankerID {
				continue
			}
			v := round.Values[p.ID]
			if v == 0 {
				continue
			}

			item := DebtItem{
				RoundIndex: i + 1,
				BankerID:   round.BankerID,
			}
			if v > 0 {
				item.FromID = round.BankerID
				item.ToID = p.ID
				item.Amount = v
			} else {
				item.FromID = p.ID
				item.ToID = round.BankerID
				item.Amount = -v
			}
			items = append(items, item)
		}
	}
	return items
}
