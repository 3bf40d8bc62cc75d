package models

import "time"

type DrawKind string

const (
	DrawKindGroupRandom DrawKind = "group_random"
	DrawKindPot         DrawKind = "pot"
	DrawKindCoinFlip    DrawKind = "coin_flip"
)

// DrawRecord is the audit trail entry written whenever a random draw affects
// competitive fairness. Seed is the 32-hex-char draw seed shown to hosts;
// Payload is the realized assignment as JSON.
type DrawRecord struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Kind         DrawKind  `json:"kind" db:"kind"`
	Seed         string    `json:"seed" db:"seed"`
	Payload      string    `json:"payload" db:"payload"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
