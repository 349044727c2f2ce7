package models

// Round represents one hand of the game.
//
// The round stores entered amounts for the non-banker players only; the
// banker's amount is implied (negative sum of everyone else's) and filled in
// by the engine at read time. A round with no banker assigned is valid but
// contributes nothing to balances or the ledger.
type Round struct {
	// ID is the unique identifier for the round (UUID format).
	ID string `json:"id"`

	// Seq is a monotonically increasing sequence number assigned at
	// creation. Rounds are append-only; deleting a round leaves a gap in
	// Seq, and the display index is the position in the Seq-ordered list.
	Seq int64 `json:"seq"`

	// BankerID is the player banking this round, or "" if not yet chosen.
	BankerID string `json:"bankerId"`

	// Values maps non-banker player ID to the signed amount entered for
	// them, in minor units. Positive means the banker pays the player,
	// negative means the player pays the banker. Never contains the
	// banker's own ID. Entries for players no longer on the roster are
	// stale and ignored at read time.
	Values map[string]int64 `json:"values"`

	// CreatedAt is the Unix timestamp when the round was created.
	CreatedAt int64 `json:"createdAt"`
}
