package engine

import (
	"reflect"
	"testing"

	"github.com/cardtab/cardtab/internal/models"
)

func TestSettle(t *testing.T) {
	tests := []struct {
		name     string
		roster   []models.Player
		balances map[string]int64
		want     []Transaction
	}{
		{
			name:     "single round scenario",
			roster:   roster("A", "B", "C"),
			balances: map[string]int64{"A": -3000, "B": 5000, "C": -2000},
			// Greedy pairs smallest debtor C(2000) with B first, then
			// A(3000); display order is descending by amount.
			want: []Transaction{
				{FromID: "A", ToID: "B", Amount: 3000},
				{FromID: "C", ToID: "B", Amount: 2000},
			},
		},
		{
			name:     "all zero balances settle to nothing",
			roster:   roster("A", "B", "C"),
			balances: map[string]int64{"A": 0, "B": 0, "C": 0},
			want:     nil,
		},
		{
			name:     "two debtors two creditors",
			roster:   roster("A", "B", "C", "D"),
			balances: map[string]int64{"A": -1000, "B": -4000, "C": 2000, "D": 3000},
			// Ascending: debtors [A(1000), B(4000)], creditors [C(2000), D(3000)].
			// A↔C 1000, B↔C 1000, B↔D 3000.
			want: []Transaction{
				{FromID: "B", ToID: "D", Amount: 3000},
				{FromID: "A", ToID: "C", Amount: 1000},
				{FromID: "B", ToID: "C", Amount: 1000},
			},
		},
		{
			name:     "equal amounts break ties by player id",
			roster:   roster("D", "C", "B", "A"),
			balances: map[string]int64{"A": -1000, "B": -1000, "C": 1000, "D": 1000},
			want: []Transaction{
				{FromID: "A", ToID: "C", Amount: 1000},
				{FromID: "B", ToID: "D", Amount: 1000},
			},
		},
		{
			name:     "zero balance participates in neither side",
			roster:   roster("A", "B", "C"),
			balances: map[string]int64{"A": -500, "B": 0, "C": 500},
			want: []Transaction{
				{FromID: "A", ToID: "C", Amount: 500},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.roster, tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Settle() = %v, want %v", got, tt.want)
			}

			if len(tt.want) > 0 {
				// At most debtors+creditors-1 transactions.
				var parties int
				for _, b := range tt.balances {
					if b != 0 {
						parties++
					}
				}
				if len(got) > parties-1 {
					t.Errorf("got %d transactions for %d parties, want at most %d",
						len(got), parties, parties-1)
				}
			}

			// Settlement closure: incoming minus outgoing equals the balance
			// for every player.
			for _, p := range tt.roster {
				var net int64
				for _, txn := range got {
					if txn.ToID == p.ID {
						net += txn.Amount
					}
					if txn.FromID == p.ID {
						net -= txn.Amount
					}
				}
				if net != tt.balances[p.ID] {
					t.Errorf("player %s: transactions net to %d, balance is %d",
						p.ID, net, tt.balances[p.ID])
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	players := roster("A", "B", "C")
	balances := map[string]int64{"A": -3000, "B": 5000, "C": -2000}
	txns := Settle(players, balances)

	got := Summarize(players, txns)
	want := []PersonSettlement{
		{PersonID: "B", Pay: 0, Receive: 5000, Net: 5000},
		{PersonID: "A", Pay: 3000, Receive: 0, Net: -3000},
		{PersonID: "C", Pay: 2000, Receive: 0, Net: -2000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize() = %v, want %v", got, want)
	}

	// Net must equal the balance for every player.
	for _, s := range got {
		if s.Net != balances[s.PersonID] {
			t.Errorf("player %s: net = %d, balance = %d", s.PersonID, s.Net, balances[s.PersonID])
		}
	}
}

func TestSummarizeEmptyPlan(t *testing.T) {
	players := roster("A", "B")
	got := Summarize(players, nil)

	if len(got) != 2 {
		t.Fatalf("expected a row per player, got %d", len(got))
	}
	for _, s := range got {
		if s.Pay != 0 || s.Receive != 0 || s.Net != 0 {
			t.Errorf("player %s: expected all-zero row, got %+v", s.PersonID, s)
		}
	}
}

// The full pipeline is pure: running it twice on the same input yields
// identical output at every stage.
func TestPipelineIdempotent(t *testing.T) {
	players := roster("A", "B", "C", "D")
	rounds := []models.Round{
		{BankerID: "A", Values: map[string]int64{"B": 5000, "C": -2000, "D": 100}},
		{BankerID: "B", Values: map[string]int64{"A": 1000, "C": 1000, "D": -300}},
		{Values: map[string]int64{"A": 42}},
	}

	first := Balances(players, rounds)
	second := Balances(players, rounds)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Balances() not stable: %v vs %v", first, second)
	}

	if !reflect.DeepEqual(ExpandDebts(players, rounds), ExpandDebts(players, rounds)) {
		t.Error("ExpandDebts() not stable")
	}

	txns1 := Settle(players, first)
	txns2 := Settle(players, second)
	if !reflect.DeepEqual(txns1, txns2) {
		t.Errorf("Settle() not stable: %v vs %v", txns1, txns2)
	}

	if !reflect.DeepEqual(Summarize(players, txns1), Summarize(players, txns2)) {
		t.Error("Summarize() not stable")
	}
}
