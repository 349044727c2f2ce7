// Package models defines the core domain models for Card Tab.
//
// # Stored Models
//
// Only two models are ever persisted:
//   - Player: a member of the session roster
//   - Round: one hand of the game, with the banker and the amounts entered
//     for the non-banker players
//
// Everything else (balances, the per-round debt ledger, the settlement plan,
// per-person summaries) is derived from the roster and round list by the
// engine package and recomputed from scratch on every read. Derived values
// are never written back.
//
// # Design Principles
//
//  1. Amounts are int64 minor units (cents). Repeatedly adding and
//     subtracting floats drifts; integers do not.
//  2. Relationships use ID strings, not pointers, to avoid circular
//     references.
//  3. A Round never stores a value for its own banker; the banker's value is
//     implied by the zero-sum rule and filled in at read time.
package models
