package seeding

import (
	"errors"
	"testing"
)

// stubProvider is a deterministic Provider for draw tests: Intn pops
// scripted values (falling back to 0) and Shuffle applies a scripted
// rotation count.
type stubProvider struct {
	ints []int
	seed string
}

func (s *stubProvider) CoinFlip() int { return s.Intn(2) }

func (s *stubProvider) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func (s *stubProvider) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, s.Intn(i+1))
	}
}

func (s *stubProvider) NewDrawSeed() string {
	if s.seed != "" {
		return s.seed
	}
	return "00000000000000000000000000000000"
}

func seededTeams(n int) []Team {
	teams := make([]Team, n)
	for i := range teams {
		teams[i] = Team{ID: 100 + i, Seed: i + 1}
	}
	return teams
}

func groupsOf(t *testing.T, res *Result) map[int][]int {
	t.Helper()
	groups := make(map[int][]int)
	for _, a := range res.Assignments {
		groups[a.Group] = append(groups[a.Group], a.TeamID)
	}
	return groups
}

func TestAssignBalancedSnakePattern(t *testing.T) {
	// 8 teams into 2 groups: picks go 1,2 then reverse 3,4 and so on.
	res, err := AssignBalanced(seededTeams(8), 2)
	if err != nil {
		t.Fatal(err)
	}

	byTeam := make(map[int]int)
	for _, a := range res.Assignments {
		byTeam[a.TeamID] = a.Group
	}

	// Seeds 1,4,5,8 in group 0; seeds 2,3,6,7 in group 1.
	wantGroup0 := []int{100, 103, 104, 107}
	wantGroup1 := []int{101, 102, 105, 106}
	for _, id := range wantGroup0 {
		if byTeam[id] != 0 {
			t.Errorf("team %d: expected group 0, got %d", id, byTeam[id])
		}
	}
	for _, id := range wantGroup1 {
		if byTeam[id] != 1 {
			t.Errorf("team %d: expected group 1, got %d", id, byTeam[id])
		}
	}
	if res.DrawSeed != "" {
		t.Error("balanced mode is deterministic; no draw seed expected")
	}
}

func TestAssignBalancedSpreadsTopSeeds(t *testing.T) {
	for _, groupCount := range []int{2, 3, 4} {
		res, err := AssignBalanced(seededTeams(12), groupCount)
		if err != nil {
			t.Fatal(err)
		}

		// Teams with seeds 1..groupCount must all land in distinct groups.
		seen := make(map[int]bool)
		for _, a := range res.Assignments {
			seed := a.TeamID - 99 // seededTeams maps seed i+1 to id 100+i
			if seed >= 1 && seed <= groupCount {
				if seen[a.Group] {
					t.Errorf("groupCount=%d: two top seeds share group %d", groupCount, a.Group)
				}
				seen[a.Group] = true
			}
		}
	}
}

func TestAssignRandomIsValidPartition(t *testing.T) {
	rnd := &stubProvider{ints: []int{3, 1, 4, 1, 5, 9, 2, 6}, seed: "deadbeefdeadbeefdeadbeefdeadbeef"}
	teams := seededTeams(10)
	res, err := AssignRandom(rnd, teams, 3)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Assignments) != len(teams) {
		t.Fatalf("expected %d assignments, got %d", len(teams), len(res.Assignments))
	}
	assigned := make(map[int]int)
	for _, a := range res.Assignments {
		assigned[a.TeamID]++
		if a.Group < 0 || a.Group >= 3 {
			t.Errorf("team %d assigned to out-of-range group %d", a.TeamID, a.Group)
		}
	}
	for _, team := range teams {
		if assigned[team.ID] != 1 {
			t.Errorf("team %d assigned %d times", team.ID, assigned[team.ID])
		}
	}
	if res.DrawSeed != "deadbeefdeadbeefdeadbeefdeadbeef" {
		t.Errorf("draw seed not propagated: %q", res.DrawSeed)
	}

	// Round-robin deal keeps group sizes within one of each other.
	groups := groupsOf(t, res)
	for g, members := range groups {
		if len(members) < 3 || len(members) > 4 {
			t.Errorf("group %d has %d teams, expected 3 or 4", g, len(members))
		}
	}
}

func TestAssignValidation(t *testing.T) {
	if _, err := AssignBalanced(seededTeams(4), 1); !errors.Is(err, ErrInvalidGroupCount) {
		t.Errorf("expected ErrInvalidGroupCount, got %v", err)
	}
	if _, err := AssignBalanced(seededTeams(2), 3); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("expected ErrNotEnoughTeams, got %v", err)
	}
	rnd := &stubProvider{}
	if _, err := AssignRandom(rnd, seededTeams(2), 4); !errors.Is(err, ErrNotEnoughTeams) {
		t.Errorf("expected ErrNotEnoughTeams, got %v", err)
	}
}

func TestGroupLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "Group A"},
		{1, "Group B"},
		{25, "Group Z"},
		{26, "Group 27"},
	}
	for _, tt := range tests {
		if got := GroupLabel(tt.index); got != tt.want {
			t.Errorf("GroupLabel(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
