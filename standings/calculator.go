// Package standings derives group tables from completed match results.
// Standings are never persisted as a source of truth: they are a pure
// function of the matches handed in.
package standings

import (
	"sort"

	"github.com/oflinehulk/showyours-core/models"
)

// PointsPolicy converts per-team win/loss facts into table points. It must
// be a pure function of those facts. The baseline awards one point per win.
type PointsPolicy func(wins, losses int) int

// OnePointPerWin is the default policy.
func OnePointPerWin(wins, losses int) int { return wins }

// Compute builds the sorted standings for one group from its completed
// matches. seeds maps team id to original seed and drives the final
// tie-break; teams present in seeds but without completed matches still get
// a zero row, so a freshly drawn group renders a full table.
//
// Sort order: points desc, score differential desc, score_for desc, seed
// asc. Never left to insertion order.
func Compute(matches []*models.Match, seeds map[int]int, policy PointsPolicy) []models.GroupStandingRow {
	if policy == nil {
		policy = OnePointPerWin
	}

	rows := make(map[int]*models.GroupStandingRow)
	rowFor := func(teamID int) *models.GroupStandingRow {
		if row, ok := rows[teamID]; ok {
			return row
		}
		row := &models.GroupStandingRow{TeamID: teamID}
		rows[teamID] = row
		return row
	}

	for teamID := range seeds {
		rowFor(teamID)
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted || m.WinnerID == nil {
			continue
		}
		if m.TeamAID == nil || m.TeamBID == nil {
			continue
		}

		rowA := rowFor(*m.TeamAID)
		rowB := rowFor(*m.TeamBID)

		rowA.Played++
		rowB.Played++
		rowA.ScoreFor += m.ScoreA
		rowA.ScoreAgainst += m.ScoreB
		rowB.ScoreFor += m.ScoreB
		rowB.ScoreAgainst += m.ScoreA

		if *m.WinnerID == *m.TeamAID {
			rowA.Wins++
			rowB.Losses++
		} else {
			rowB.Wins++
			rowA.Losses++
		}
	}

	table := make([]models.GroupStandingRow, 0, len(rows))
	for _, row := range rows {
		row.Points = policy(row.Wins, row.Losses)
		table = append(table, *row)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ScoreDifference() != b.ScoreDifference() {
			return a.ScoreDifference() > b.ScoreDifference()
		}
		if a.ScoreFor != b.ScoreFor {
			return a.ScoreFor > b.ScoreFor
		}
		return seeds[a.TeamID] < seeds[b.TeamID]
	})

	return table
}

// SplitQualifiers slices a sorted table into primary qualifiers, secondary
// qualifiers and the rest. The counts are caller policy, not computed here.
func SplitQualifiers(table []models.GroupStandingRow, advanceCount, advanceToLowerCount int) (upper, lower, out []models.GroupStandingRow) {
	if advanceCount < 0 {
		advanceCount = 0
	}
	if advanceToLowerCount < 0 {
		advanceToLowerCount = 0
	}
	if advanceCount > len(table) {
		advanceCount = len(table)
	}
	secondEnd := advanceCount + advanceToLowerCount
	if secondEnd > len(table) {
		secondEnd = len(table)
	}
	return table[:advanceCount], table[advanceCount:secondEnd], table[secondEnd:]
}
