package models

import "time"

// Group is a stage-scoped partition of teams. Groups are created once per
// stage by the assignment engine; re-running a draw replaces them wholesale.
type Group struct {
	ID        int       `json:"id" db:"id"`
	Label     string    `json:"label" db:"label"`
	StageID   int       `json:"stage_id" db:"stage_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GroupAssignment pins a team to a group. Pot is the seeding bucket the team
// was drawn from; pot 0 is the overflow pot.
type GroupAssignment struct {
	ID      int `json:"id" db:"id"`
	GroupID int `json:"group_id" db:"group_id"`
	TeamID  int `json:"team_id" db:"team_id"`
	Pot     int `json:"pot" db:"pot"`
}
