package models

import "time"

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusOngoing   MatchStatus = "ongoing"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusDisputed  MatchStatus = "disputed"
)

type BracketType string

const (
	BracketWinners BracketType = "winners"
	BracketLosers  BracketType = "losers"
	BracketFinals  BracketType = "finals"
)

// Match is a single bracket slot. TeamAID/TeamBID are nil while the slot is
// still a bye (round 1) or awaits a winner from an earlier round.
// MatchNumber is a 1-based ordinal, unique within (round, bracket_type).
type Match struct {
	ID            int         `json:"id" db:"id"`
	TournamentID  int         `json:"tournament_id" db:"tournament_id"`
	Round         int         `json:"round" db:"round"`
	MatchNumber   int         `json:"match_number" db:"match_number"`
	Bracket       BracketType `json:"bracket_type" db:"bracket_type"`
	TeamAID       *int        `json:"team_a_id,omitempty" db:"team_a_id"`
	TeamBID       *int        `json:"team_b_id,omitempty" db:"team_b_id"`
	WinnerID      *int        `json:"winner_id,omitempty" db:"winner_id"`
	Status        MatchStatus `json:"status" db:"status"`
	BestOf        int         `json:"best_of" db:"best_of"`
	ScoreA        int         `json:"score_a" db:"score_a"`
	ScoreB        int         `json:"score_b" db:"score_b"`
	ScheduledTime *time.Time  `json:"scheduled_time,omitempty" db:"scheduled_time"`
	GroupID       *int        `json:"group_id,omitempty" db:"group_id"`
	StageID       *int        `json:"stage_id,omitempty" db:"stage_id"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}
