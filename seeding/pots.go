package seeding

import (
	"fmt"
	"sort"

	"github.com/oflinehulk/showyours-core/random"
)

// OverflowPot holds teams beyond total pot capacity; they are distributed
// after pots 1..K have been drawn.
const OverflowPot = 0

// PotTeam is a draw participant pre-sorted into a pot. Pot 0 is the overflow
// pot; OriginPot records which pot an overflow team would have belonged to,
// used as a best-effort spreading hint.
type PotTeam struct {
	Team
	Pot       int
	OriginPot int
}

// ValidationError names the pot that makes a draw impossible. The draw fails
// before any partial state is produced.
type ValidationError struct {
	Pot    int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pot %d: %s", e.Pot, e.Reason)
}

// AssignByPots runs a pot-constrained draw: within each pot 1..K, teams are
// placed one per group at random, so no group ever holds two teams from the
// same pot. Overflow (pot 0) teams are then placed one at a time into groups
// chosen uniformly at random, avoiding groups that already hold a team from
// their origin pot while a slot elsewhere is still open.
func AssignByPots(rnd random.Provider, teams []PotTeam, groupCount int) (*Result, error) {
	if groupCount < 2 {
		return nil, ErrInvalidGroupCount
	}

	pots := make(map[int][]PotTeam)
	maxPot := 0
	for _, t := range teams {
		if t.Pot < 0 {
			return nil, &ValidationError{Pot: t.Pot, Reason: "pot number must not be negative"}
		}
		pots[t.Pot] = append(pots[t.Pot], t)
		if t.Pot > maxPot {
			maxPot = t.Pot
		}
	}
	if maxPot == 0 {
		return nil, &ValidationError{Pot: 1, Reason: "no seeding pots provided"}
	}

	// All pots validated up front: nothing is drawn if any pot is broken.
	for p := 1; p <= maxPot; p++ {
		members := pots[p]
		if len(members) == 0 {
			return nil, &ValidationError{Pot: p, Reason: "pot is empty"}
		}
		if len(members) > groupCount {
			return nil, &ValidationError{
				Pot:    p,
				Reason: fmt.Sprintf("pot holds %d teams but capacity is %d (one per group)", len(members), groupCount),
			}
		}
	}

	result := &Result{GroupCount: groupCount, DrawSeed: rnd.NewDrawSeed()}

	// groupPots[g] tracks which pots already placed a team in group g.
	groupPots := make([]map[int]bool, groupCount)
	groupSize := make([]int, groupCount)
	for g := range groupPots {
		groupPots[g] = make(map[int]bool)
	}

	place := func(t PotTeam, group, pot int) {
		groupPots[group][pot] = true
		groupSize[group]++
		result.Assignments = append(result.Assignments, Assignment{
			TeamID:     t.ID,
			Group:      group,
			GroupLabel: GroupLabel(group),
			Pot:        pot,
		})
	}

	for p := 1; p <= maxPot; p++ {
		members := make([]PotTeam, len(pots[p]))
		copy(members, pots[p])
		rnd.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })

		// A random permutation of group indices gives each pot member a
		// distinct group.
		perm := make([]int, groupCount)
		for i := range perm {
			perm[i] = i
		}
		rnd.Shuffle(groupCount, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		for i, t := range members {
			place(t, perm[i], p)
		}
	}

	// Overflow teams, one at a time, uniformly at random over open groups.
	overflow := pots[OverflowPot]
	if len(overflow) > 0 {
		capPerGroup := (len(teams) + groupCount - 1) / groupCount
		ordered := make([]PotTeam, len(overflow))
		copy(ordered, overflow)
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].Seed < ordered[j].Seed })

		for _, t := range ordered {
			var open, preferred []int
			for g := 0; g < groupCount; g++ {
				if groupSize[g] >= capPerGroup {
					continue
				}
				open = append(open, g)
				if t.OriginPot == 0 || !groupPots[g][t.OriginPot] {
					preferred = append(preferred, g)
				}
			}
			if len(open) == 0 {
				return nil, &ValidationError{
					Pot:    OverflowPot,
					Reason: fmt.Sprintf("no group can take overflow team %d (all %d groups at capacity %d)", t.ID, groupCount, capPerGroup),
				}
			}
			candidates := preferred
			if len(candidates) == 0 {
				candidates = open
			}
			place(t, candidates[rnd.Intn(len(candidates))], OverflowPot)
		}
	}

	return result, nil
}
