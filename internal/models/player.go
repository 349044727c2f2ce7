package models

// Player represents one member of the session roster.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	// IDs are stable for the life of the session.
	ID string `json:"id"`

	// Name is the display name. Names are mutable and may repeat;
	// identity always comes from ID.
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the player was added.
	CreatedAt int64 `json:"createdAt"`
}
