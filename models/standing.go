package models

// GroupStandingRow is derived, never persisted: a pure function of the
// completed matches in a group.
type GroupStandingRow struct {
	TeamID       int `json:"team_id"`
	Played       int `json:"played"`
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	ScoreFor     int `json:"score_for"`
	ScoreAgainst int `json:"score_against"`
	Points       int `json:"points"`
}

// ScoreDifference is the first tie-break after points.
func (r GroupStandingRow) ScoreDifference() int {
	return r.ScoreFor - r.ScoreAgainst
}
