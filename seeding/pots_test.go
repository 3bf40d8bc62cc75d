package seeding

import (
	"errors"
	"testing"
)

func potTeam(id, seed, pot int) PotTeam {
	return PotTeam{Team: Team{ID: id, Seed: seed}, Pot: pot}
}

func TestAssignByPotsOnePerGroup(t *testing.T) {
	teams := []PotTeam{
		potTeam(1, 1, 1), potTeam(2, 2, 1), potTeam(3, 3, 1),
		potTeam(4, 4, 2), potTeam(5, 5, 2), potTeam(6, 6, 2),
		potTeam(7, 7, 3), potTeam(8, 8, 3), potTeam(9, 9, 3),
	}

	// Several scripted draws: the one-per-pot-per-group invariant must hold
	// regardless of the randomness consumed.
	scripts := [][]int{
		{},
		{1, 2, 1, 2, 0, 1, 2, 0, 1, 2, 1, 1},
		{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
	}
	for _, script := range scripts {
		rnd := &stubProvider{ints: append([]int(nil), script...)}
		res, err := AssignByPots(rnd, teams, 3)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Assignments) != len(teams) {
			t.Fatalf("expected %d assignments, got %d", len(teams), len(res.Assignments))
		}

		potInGroup := make(map[[2]int]int) // (group, pot) -> count
		for _, a := range res.Assignments {
			potInGroup[[2]int{a.Group, a.Pot}]++
		}
		for key, count := range potInGroup {
			if count > 1 {
				t.Errorf("group %d holds %d teams from pot %d", key[0], count, key[1])
			}
		}
		if res.DrawSeed == "" {
			t.Error("pot draw must report a draw seed for audit replay")
		}
	}
}

func TestAssignByPotsEmptyPotRejected(t *testing.T) {
	// Pot 2 is skipped: validation must name it.
	teams := []PotTeam{
		potTeam(1, 1, 1), potTeam(2, 2, 1),
		potTeam(3, 3, 3), potTeam(4, 4, 3),
	}
	_, err := AssignByPots(&stubProvider{}, teams, 2)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Pot != 2 {
		t.Errorf("error should name pot 2, named pot %d (%v)", verr.Pot, verr)
	}
}

func TestAssignByPotsOversizedPotRejected(t *testing.T) {
	teams := []PotTeam{
		potTeam(1, 1, 1), potTeam(2, 2, 1), potTeam(3, 3, 1),
	}
	_, err := AssignByPots(&stubProvider{}, teams, 2)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Pot != 1 {
		t.Errorf("error should name pot 1, named pot %d", verr.Pot)
	}
}

func TestAssignByPotsOverflowPlacedAfterPots(t *testing.T) {
	teams := []PotTeam{
		potTeam(1, 1, 1), potTeam(2, 2, 1),
		potTeam(3, 3, 2), potTeam(4, 4, 2),
		{Team: Team{ID: 5, Seed: 5}, Pot: OverflowPot, OriginPot: 2},
		{Team: Team{ID: 6, Seed: 6}, Pot: OverflowPot, OriginPot: 2},
	}
	rnd := &stubProvider{ints: []int{0, 1, 0, 1, 0, 0, 0, 0}}
	res, err := AssignByPots(rnd, teams, 2)
	if err != nil {
		t.Fatal(err)
	}

	assigned := make(map[int]bool)
	overflowCount := 0
	for _, a := range res.Assignments {
		if assigned[a.TeamID] {
			t.Errorf("team %d assigned twice", a.TeamID)
		}
		assigned[a.TeamID] = true
		if a.Pot == OverflowPot {
			overflowCount++
		}
	}
	if overflowCount != 2 {
		t.Errorf("expected 2 overflow assignments, got %d", overflowCount)
	}
	// Overflow entries come after every pot placement in the reported
	// sequence.
	sawOverflow := false
	for _, a := range res.Assignments {
		if a.Pot == OverflowPot {
			sawOverflow = true
		} else if sawOverflow {
			t.Fatal("pot assignment reported after overflow placement")
		}
	}

	// 6 teams into 2 groups: overflow must balance to 3 per group.
	groups := groupsOf(t, res)
	for g, members := range groups {
		if len(members) != 3 {
			t.Errorf("group %d has %d teams, expected 3", g, len(members))
		}
	}
}

func TestAssignByPotsNoPotsRejected(t *testing.T) {
	teams := []PotTeam{
		{Team: Team{ID: 1, Seed: 1}, Pot: OverflowPot},
		{Team: Team{ID: 2, Seed: 2}, Pot: OverflowPot},
	}
	_, err := AssignByPots(&stubProvider{}, teams, 2)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for overflow-only input, got %v", err)
	}
}
