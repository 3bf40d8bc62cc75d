package models

import "time"

// Team carries only what the engine needs: an identifier and an ordinal
// seed. Lower seed means a stronger team.
type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Seed      int       `json:"seed" db:"seed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
