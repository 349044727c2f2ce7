package engine

import (
	"sort"

	"github.com/cardtab/cardtab/internal/models"
)

// Transaction is one directed payment in the settlement plan.
type Transaction struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Amount int64  `json:"amount"` // always > 0
}

// PersonSettlement summarizes one player's side of the settlement plan.
type PersonSettlement struct {
	PersonID string `json:"personId"`
	Pay      int64  `json:"pay"`     // sum of outgoing transaction amounts
	Receive  int64  `json:"receive"` // sum of incoming transaction amounts
	Net      int64  `json:"net"`     // receive - pay, equals the player's balance
}

// party is one side of an open debt during settlement.
type party struct {
	id     string
	amount int64 // remaining, always > 0 while in play
}

func sortAscending(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount < parties[j].amount
		}
		return parties[i].id < parties[j].id
	})
}

// Settle produces directed transactions that zero out every balance.
//
// Algorithm:
//   - Split players into debtors (balance < 0, tracked as positive owed
//     amounts) and creditors (balance > 0); zero balances sit out.
//   - Sort both lists ascending by amount (ties by player id).
//   - Repeatedly settle min(smallest debtor, smallest creditor) as one
//     transaction, advancing past whichever side hits exactly 0.
//
// This yields at most debtors+creditors-1 transactions. It is a cheap
// deterministic approximation, not a minimum-transaction solver; finding the
// true minimum is a hard combinatorial problem. The final descending sort by
// amount is for display only and does not change the semantics.
func Settle(roster []models.Player, balances map[string]int64) []Transaction {
	var debtors, creditors []party
	for _, p := range roster {
		switch b := balances[p.ID]; {
		case b < 0:
			debtors = append(debtors, party{id: p.ID, amount: -b})
		case b > 0:
			creditors = append(creditors, party{id: p.ID, amount: b})
		}
	}
	sortAscending(debtors)
	sortAscending(creditors)

	var txns []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := min(debtors[i].amount, creditors[j].amount)
		txns = append(txns, Transaction{
			FromID: debtors[i].id,
			ToID:   creditors[j].id,
			Amount: amount,
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}

	sort.SliceStable(txns, func(a, b int) bool {
		return txns[a].Amount > txns[b].Amount
	})
	return txns
}

// Summarize folds the settlement plan into a pay/receive/net row per roster
// player, ordered by descending absolute net (ties by player id). For every
// player, net equals their balance.
func Summarize(roster []models.Player, txns []Transaction) []PersonSettlement {
	byID := make(map[string]*PersonSettlement, len(roster))
	summaries := make([]PersonSettlement, len(roster))
	for i, p := range roster {
		summaries[i] = PersonSettlement{PersonID: p.ID}
		byID[p.ID] = &summaries[i]
	}

	for _, t := range txns {
		byID[t.FromID].Pay += t.Amount
		byID[t.ToID].Receive += t.Amount
	}
	for i := range summaries {
		summaries[i].Net = summaries[i].Receive - summaries[i].Pay
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := abs(summaries[i].Net), abs(summaries[j].Net)
		if a != b {
			return a > b
		}
		return summaries[i].PersonID < summaries[j].PersonID
	})
	return summaries
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
