// Package seeding partitions approved teams into groups: a deterministic
// snake draft, a fully random distribution, or a pot-constrained draw.
// Every random branch routes through random.Provider so draws stay auditable
// and unit-testable.
package seeding

import (
	"errors"
	"fmt"
	"sort"

	"github.com/oflinehulk/showyours-core/random"
)

var (
	ErrInvalidGroupCount = errors.New("group count must be at least 2")
	ErrNotEnoughTeams    = errors.New("not enough teams to fill every group")
)

type Mode string

const (
	ModeBalanced Mode = "balanced"
	ModeRandom   Mode = "random"
)

// Team is a draw participant. Lower seed = stronger.
type Team struct {
	ID   int
	Seed int
}

// Assignment places one team into one group. Group is the zero-based group
// index; Pot is 0 for teams that were not drawn from a seeding pot.
type Assignment struct {
	TeamID     int    `json:"team_id"`
	Group      int    `json:"group"`
	GroupLabel string `json:"group_label"`
	Pot        int    `json:"pot"`
}

// Result is the realized partition. DrawSeed is empty for the deterministic
// balanced mode and set whenever the randomness provider was consulted, so
// the caller can hand it to the audit sink.
type Result struct {
	GroupCount  int          `json:"group_count"`
	Assignments []Assignment `json:"assignments"`
	DrawSeed    string       `json:"draw_seed,omitempty"`
}

// GroupLabel names groups "Group A", "Group B", … past Z it degrades to a
// numeric label.
func GroupLabel(index int) string {
	if index >= 0 && index < 26 {
		return fmt.Sprintf("Group %c", 'A'+rune(index))
	}
	return fmt.Sprintf("Group %d", index+1)
}

func validate(teamCount, groupCount int) error {
	if groupCount < 2 {
		return ErrInvalidGroupCount
	}
	if teamCount < groupCount {
		return fmt.Errorf("%w: %d teams for %d groups", ErrNotEnoughTeams, teamCount, groupCount)
	}
	return nil
}

// AssignBalanced sorts by seed ascending and snake-drafts into groupCount
// buckets: the pick direction reverses every groupCount picks, so top seeds
// spread evenly and adjacent seeds never pile into one group.
func AssignBalanced(teams []Team, groupCount int) (*Result, error) {
	if err := validate(len(teams), groupCount); err != nil {
		return nil, err
	}

	ordered := make([]Team, len(teams))
	copy(ordered, teams)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Seed < ordered[j].Seed })

	result := &Result{GroupCount: groupCount}
	for i, team := range ordered {
		row := i / groupCount
		col := i % groupCount
		group := col
		if row%2 == 1 {
			group = groupCount - 1 - col
		}
		result.Assignments = append(result.Assignments, Assignment{
			TeamID:     team.ID,
			Group:      group,
			GroupLabel: GroupLabel(group),
		})
	}
	return result, nil
}

// AssignRandom shuffles the team list via the secure provider and deals it
// round-robin into the groups.
func AssignRandom(rnd random.Provider, teams []Team, groupCount int) (*Result, error) {
	if err := validate(len(teams), groupCount); err != nil {
		return nil, err
	}

	shuffled := make([]Team, len(teams))
	copy(shuffled, teams)
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	result := &Result{GroupCount: groupCount, DrawSeed: rnd.NewDrawSeed()}
	for i, team := range shuffled {
		group := i % groupCount
		result.Assignments = append(result.Assignments, Assignment{
			TeamID:     team.ID,
			Group:      group,
			GroupLabel: GroupLabel(group),
		})
	}
	return result, nil
}
