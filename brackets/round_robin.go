package brackets

import (
	"context"

	"github.com/oflinehulk/showyours-core/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket creates one match per unordered pair of teams, in lexical
// seed order, all in round 1. No byes regardless of team count.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateParams) ([]*BracketMatch, error) {
	teamIDs := params.TeamIDs
	n := len(teamIDs)
	if n < 2 {
		return nil, ErrInsufficientTeams
	}

	opts, err := params.Options.normalize()
	if err != nil {
		return nil, err
	}

	matches := make([]*BracketMatch, 0, n*(n-1)/2)
	matchNumber := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			matchNumber++
			matches = append(matches, &BracketMatch{
				Round:       1,
				MatchNumber: matchNumber,
				Bracket:     models.BracketWinners,
				SlotA:       TeamSlot(teamIDs[i]),
				SlotB:       TeamSlot(teamIDs[j]),
				BestOf:      opts.DefaultBestOf,
			})
		}
	}

	return matches, nil
}
