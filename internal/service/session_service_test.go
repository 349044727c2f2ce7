package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cardtab/cardtab/internal/models"
	"github.com/cardtab/cardtab/internal/storage/sqlite"
)

func newTestService(t *testing.T) *SessionService {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "cardtab-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewSessionService(store)
}

func mustAddPlayer(t *testing.T, svc *SessionService, name string) *models.Player {
	t.Helper()
	player, err := svc.AddPlayer(context.Background(), name)
	if err != nil {
		t.Fatalf("AddPlayer(%s) failed: %v", name, err)
	}
	return player
}

func TestAddPlayerValidation(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.AddPlayer(context.Background(), ""); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestRoundLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice := mustAddPlayer(t, svc, "Alice")
	bob := mustAddPlayer(t, svc, "Bob")

	round, err := svc.CreateRound(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}
	if round.Seq != 1 {
		t.Errorf("Seq = %d, want 1", round.Seq)
	}

	t.Run("unknown banker rejected", func(t *testing.T) {
		if _, err := svc.CreateRound(ctx, "no-such-player"); err == nil {
			t.Error("expected error for unknown banker")
		}
	})

	t.Run("next round inherits banker", func(t *testing.T) {
		next, err := svc.CreateRound(ctx, "")
		if err != nil {
			t.Fatalf("CreateRound failed: %v", err)
		}
		if next.BankerID != alice.ID {
			t.Errorf("BankerID = %s, want inherited %s", next.BankerID, alice.ID)
		}
		if err := svc.DeleteRound(ctx, next.ID); err != nil {
			t.Fatalf("DeleteRound failed: %v", err)
		}
	})

	t.Run("banker cannot carry an entered value", func(t *testing.T) {
		if _, err := svc.SetValue(ctx, round.ID, alice.ID, 1000); err == nil {
			t.Error("expected error when setting the banker's value")
		}
	})

	t.Run("value for unknown player rejected", func(t *testing.T) {
		if _, err := svc.SetValue(ctx, round.ID, "no-such-player", 1000); err == nil {
			t.Error("expected error for unknown player")
		}
	})

	t.Run("value recorded", func(t *testing.T) {
		got, err := svc.SetValue(ctx, round.ID, bob.ID, 5000)
		if err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}
		if got.Values[bob.ID] != 5000 {
			t.Errorf("Value = %d, want 5000", got.Values[bob.ID])
		}
	})
}

// Runs the documented three-player scenario through the whole stack:
// banker A, B wins 50.00, C loses 20.00.
func TestSettlementScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice := mustAddPlayer(t, svc, "Alice")
	bob := mustAddPlayer(t, svc, "Bob")
	carol := mustAddPlayer(t, svc, "Carol")

	round, err := svc.CreateRound(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}
	if _, err := svc.SetValue(ctx, round.ID, bob.ID, 5000); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if _, err := svc.SetValue(ctx, round.ID, carol.ID, -2000); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	balances, err := svc.GetBalances(ctx)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	wantBalances := map[string]int64{alice.ID: -3000, bob.ID: 5000, carol.ID: -2000}
	for _, b := range balances {
		if b.Amount != wantBalances[b.PlayerID] {
			t.Errorf("balance[%s] = %d, want %d", b.PlayerID, b.Amount, wantBalances[b.PlayerID])
		}
	}

	ledger, err := svc.GetLedger(ctx)
	if err != nil {
		t.Fatalf("GetLedger failed: %v", err)
	}
	if len(ledger) != 2 {
		t.Fatalf("expected 2 ledger items, got %d", len(ledger))
	}
	if ledger[0].FromID != alice.ID || ledger[0].ToID != bob.ID || ledger[0].Amount != 5000 {
		t.Errorf("ledger[0] = %+v, want banker pays Bob 5000", ledger[0])
	}
	if ledger[1].FromID != carol.ID || ledger[1].ToID != alice.ID || ledger[1].Amount != 2000 {
		t.Errorf("ledger[1] = %+v, want Carol pays banker 2000", ledger[1])
	}

	plan, err := svc.GetSettlement(ctx)
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if len(plan.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(plan.Transactions))
	}
	// Display order is descending by amount: A pays 3000, then C pays 2000.
	if plan.Transactions[0].FromID != alice.ID || plan.Transactions[0].Amount != 3000 {
		t.Errorf("transactions[0] = %+v, want Alice pays 3000", plan.Transactions[0])
	}
	if plan.Transactions[1].FromID != carol.ID || plan.Transactions[1].Amount != 2000 {
		t.Errorf("transactions[1] = %+v, want Carol pays 2000", plan.Transactions[1])
	}

	// Per-person net must match the balance.
	for _, p := range plan.Persons {
		if p.Net != wantBalances[p.PersonID] {
			t.Errorf("person %s net = %d, balance = %d", p.PersonID, p.Net, wantBalances[p.PersonID])
		}
	}
}

func TestRemovePlayerDropsFromAllOutputs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice := mustAddPlayer(t, svc, "Alice")
	bob := mustAddPlayer(t, svc, "Bob")
	carol := mustAddPlayer(t, svc, "Carol")

	round, err := svc.CreateRound(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}
	if _, err := svc.SetValue(ctx, round.ID, bob.ID, 3000); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if _, err := svc.SetValue(ctx, round.ID, carol.ID, -1000); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	if err := svc.RemovePlayer(ctx, carol.ID); err != nil {
		t.Fatalf("RemovePlayer failed: %v", err)
	}

	balances, err := svc.GetBalances(ctx)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	for _, b := range balances {
		if b.PlayerID == carol.ID {
			t.Error("removed player still present in balances")
		}
	}
	// Carol's contribution is gone; the banker now absorbs only Bob's win.
	want := map[string]int64{alice.ID: -3000, bob.ID: 3000}
	for _, b := range balances {
		if b.Amount != want[b.PlayerID] {
			t.Errorf("balance[%s] = %d, want %d", b.PlayerID, b.Amount, want[b.PlayerID])
		}
	}

	ledger, err := svc.GetLedger(ctx)
	if err != nil {
		t.Fatalf("GetLedger failed: %v", err)
	}
	for _, item := range ledger {
		if item.FromID == carol.ID || item.ToID == carol.ID {
			t.Error("removed player still present in ledger")
		}
	}

	plan, err := svc.GetSettlement(ctx)
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	for _, txn := range plan.Transactions {
		if txn.FromID == carol.ID || txn.ToID == carol.ID {
			t.Error("removed player still present in settlement")
		}
	}
}

func TestRemoveBankerExcludesRound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	alice := mustAddPlayer(t, svc, "Alice")
	bob := mustAddPlayer(t, svc, "Bob")

	round, err := svc.CreateRound(ctx, alice.ID)
	if err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}
	if _, err := svc.SetValue(ctx, round.ID, bob.ID, 4000); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}

	if err := svc.RemovePlayer(ctx, alice.ID); err != nil {
		t.Fatalf("RemovePlayer failed: %v", err)
	}

	// With its banker gone the round contributes nothing.
	balances, err := svc.GetBalances(ctx)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if len(balances) != 1 || balances[0].Amount != 0 {
		t.Errorf("balances = %v, want Bob at 0", balances)
	}

	plan, err := svc.GetSettlement(ctx)
	if err != nil {
		t.Fatalf("GetSettlement failed: %v", err)
	}
	if len(plan.Transactions) != 0 {
		t.Errorf("expected empty settlement, got %v", plan.Transactions)
	}
}
