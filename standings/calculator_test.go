package standings

import (
	"testing"

	"github.com/oflinehulk/showyours-core/models"
)

func completed(teamA, teamB, scoreA, scoreB int) *models.Match {
	winner := teamA
	if scoreB > scoreA {
		winner = teamB
	}
	return &models.Match{
		TeamAID:  &teamA,
		TeamBID:  &teamB,
		WinnerID: &winner,
		Status:   models.MatchStatusCompleted,
		ScoreA:   scoreA,
		ScoreB:   scoreB,
	}
}

func TestComputeBasicTable(t *testing.T) {
	seeds := map[int]int{1: 1, 2: 2, 3: 3}
	matches := []*models.Match{
		completed(1, 2, 2, 0), // 1 beats 2
		completed(1, 3, 2, 1), // 1 beats 3
		completed(2, 3, 0, 2), // 3 beats 2
	}

	table := Compute(matches, seeds, nil)
	if len(table) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table))
	}

	if table[0].TeamID != 1 || table[0].Points != 2 || table[0].Wins != 2 {
		t.Errorf("row 0 wrong: %+v", table[0])
	}
	if table[1].TeamID != 3 || table[1].Points != 1 {
		t.Errorf("row 1 wrong: %+v", table[1])
	}
	if table[2].TeamID != 2 || table[2].Losses != 2 {
		t.Errorf("row 2 wrong: %+v", table[2])
	}

	if table[0].ScoreFor != 4 || table[0].ScoreAgainst != 1 {
		t.Errorf("score aggregation wrong for team 1: %+v", table[0])
	}
}

func TestComputeTieBreakByDifferential(t *testing.T) {
	seeds := map[int]int{1: 1, 2: 2, 3: 3, 4: 4}
	// 1 and 2 both finish on one win, but 2 has the better differential.
	matches := []*models.Match{
		completed(1, 3, 2, 1), // diff +1 for team 1
		completed(2, 4, 2, 0), // diff +2 for team 2
	}

	table := Compute(matches, seeds, nil)
	if table[0].TeamID != 2 {
		t.Errorf("team 2 should lead on differential, table: %+v", table)
	}
	if table[1].TeamID != 1 {
		t.Errorf("team 1 should be second, table: %+v", table)
	}
}

func TestComputeTieBreakByScoreForThenSeed(t *testing.T) {
	seeds := map[int]int{1: 4, 2: 1, 3: 2, 4: 3}
	// Teams 1 and 2: same points, same differential, same score_for.
	// The lower original seed (team 2, seed 1) must rank first.
	matches := []*models.Match{
		completed(1, 3, 2, 1),
		completed(2, 4, 2, 1),
	}

	table := Compute(matches, seeds, nil)
	if table[0].TeamID != 2 || table[1].TeamID != 1 {
		t.Errorf("seed tie-break failed: %+v", table)
	}
}

func TestComputeIgnoresIncompleteMatches(t *testing.T) {
	seeds := map[int]int{1: 1, 2: 2}
	a, b := 1, 2
	matches := []*models.Match{
		{TeamAID: &a, TeamBID: &b, Status: models.MatchStatusPending},
		{TeamAID: &a, TeamBID: &b, Status: models.MatchStatusOngoing, ScoreA: 1},
		{TeamAID: &a, TeamBID: &b, Status: models.MatchStatusDisputed, ScoreA: 2, ScoreB: 1},
	}

	table := Compute(matches, seeds, nil)
	for _, row := range table {
		if row.Played != 0 || row.Points != 0 {
			t.Errorf("incomplete matches must not count: %+v", row)
		}
	}
}

func TestComputeCustomPointsPolicy(t *testing.T) {
	seeds := map[int]int{1: 1, 2: 2}
	matches := []*models.Match{completed(1, 2, 2, 0)}

	threePerWin := func(wins, losses int) int { return wins * 3 }
	table := Compute(matches, seeds, threePerWin)
	if table[0].Points != 3 {
		t.Errorf("custom policy not applied: %+v", table[0])
	}
}

func TestSplitQualifiers(t *testing.T) {
	table := []models.GroupStandingRow{
		{TeamID: 1}, {TeamID: 2}, {TeamID: 3}, {TeamID: 4},
	}

	upper, lower, out := SplitQualifiers(table, 2, 1)
	if len(upper) != 2 || upper[0].TeamID != 1 || upper[1].TeamID != 2 {
		t.Errorf("upper wrong: %+v", upper)
	}
	if len(lower) != 1 || lower[0].TeamID != 3 {
		t.Errorf("lower wrong: %+v", lower)
	}
	if len(out) != 1 || out[0].TeamID != 4 {
		t.Errorf("out wrong: %+v", out)
	}

	// Counts beyond the table are clipped, not an error.
	upper, lower, out = SplitQualifiers(table, 10, 10)
	if len(upper) != 4 || len(lower) != 0 || len(out) != 0 {
		t.Errorf("clipping failed: %d/%d/%d", len(upper), len(lower), len(out))
	}
}
