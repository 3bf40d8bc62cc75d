package models

// AvailabilitySlot is a team's declared willingness to play a specific match
// at a specific date and time. Date is "2006-01-02", Time is "15:04"; both
// must name a slot on the tournament's fixed grid.
type AvailabilitySlot struct {
	ID      int    `json:"id" db:"id"`
	TeamID  int    `json:"team_id" db:"team_id"`
	MatchID int    `json:"match_id" db:"match_id"`
	Date    string `json:"date" db:"date"`
	Time    string `json:"time" db:"time"`
}
