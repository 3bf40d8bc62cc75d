package brackets

import (
	"context"
	"errors"
	"testing"

	"github.com/oflinehulk/showyours-core/models"
)

func TestRoundRobinPairCounts(t *testing.T) {
	tests := []struct {
		teams int
		want  int
	}{
		{teams: 2, want: 1},
		{teams: 3, want: 3},
		{teams: 4, want: 6},
		{teams: 5, want: 10},
		{teams: 8, want: 28},
	}
	g := NewRoundRobinGenerator()
	for _, tt := range tests {
		matches := generate(t, g, tt.teams, Options{})
		if len(matches) != tt.want {
			t.Errorf("%d teams: expected %d matches, got %d", tt.teams, tt.want, len(matches))
		}
	}
}

func TestRoundRobinEveryPairOnce(t *testing.T) {
	g := NewRoundRobinGenerator()
	ids := teamIDs(5)
	matches := generate(t, g, 5, Options{})

	type pair struct{ a, b int }
	seen := make(map[pair]int)
	for _, m := range matches {
		if m.Round != 1 {
			t.Errorf("round robin match in round %d; all matches belong to round 1", m.Round)
		}
		if m.Bracket != models.BracketWinners {
			t.Errorf("round robin bracket should be 'winners', got %q", m.Bracket)
		}
		if m.SlotA.Kind != SlotTeam || m.SlotB.Kind != SlotTeam {
			t.Error("round robin never produces byes or undetermined slots")
			continue
		}
		a, b := m.SlotA.TeamID, m.SlotB.TeamID
		if a > b {
			a, b = b, a
		}
		seen[pair{a, b}]++
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if a > b {
				a, b = b, a
			}
			if seen[pair{a, b}] != 1 {
				t.Errorf("pair (%d,%d) appears %d times, expected exactly once", a, b, seen[pair{a, b}])
			}
		}
	}
}

func TestRoundRobinBestOfAndNumbering(t *testing.T) {
	g := NewRoundRobinGenerator()
	matches := generate(t, g, 4, Options{})

	for i, m := range matches {
		if m.BestOf != 1 {
			t.Errorf("round robin match should default to best_of 1, got %d", m.BestOf)
		}
		if m.MatchNumber != i+1 {
			t.Errorf("match_number should increment from 1 in seed order: index %d has number %d", i, m.MatchNumber)
		}
	}
}

func TestRoundRobinInsufficientTeams(t *testing.T) {
	g := NewRoundRobinGenerator()
	_, err := g.GenerateBracket(context.Background(), GenerateParams{TournamentID: 1, TeamIDs: []int{7}})
	if !errors.Is(err, ErrInsufficientTeams) {
		t.Fatalf("expected ErrInsufficientTeams, got %v", err)
	}
}
