package brackets

import (
	"context"
	"math"

	"github.com/oflinehulk/showyours-core/models"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket builds a full single-elimination skeleton. The team list is
// padded to the next power of two; the padding is granted as byes to the tail
// of the seed order, one bye per match, so every bye match has a real team in
// slot A. Rounds beyond the first are created with both slots undetermined
// and are populated externally as winners propagate.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateParams) ([]*BracketMatch, error) {
	n := len(params.TeamIDs)
	if n < 2 {
		return nil, ErrInsufficientTeams
	}

	opts, err := params.Options.normalize()
	if err != nil {
		return nil, err
	}

	totalRounds := int(math.Ceil(math.Log2(float64(n))))
	paddedLength := 1 << uint(totalRounds)
	numByes := paddedLength - n

	matches := make([]*BracketMatch, 0, paddedLength-1)

	// Round 1: the leading n-numByes teams pair consecutively, the rest each
	// take a bye. n-numByes = 2n-paddedLength is always even.
	playing := n - numByes
	matchNumber := 0
	for i := 0; i < playing; i += 2 {
		matchNumber++
		matches = append(matches, &BracketMatch{
			Round:       1,
			MatchNumber: matchNumber,
			Bracket:     roundBracketType(1, totalRounds),
			SlotA:       TeamSlot(params.TeamIDs[i]),
			SlotB:       TeamSlot(params.TeamIDs[i+1]),
			BestOf:      roundBestOf(1, totalRounds, opts),
		})
	}
	for i := playing; i < n; i++ {
		matchNumber++
		matches = append(matches, &BracketMatch{
			Round:       1,
			MatchNumber: matchNumber,
			Bracket:     roundBracketType(1, totalRounds),
			SlotA:       TeamSlot(params.TeamIDs[i]),
			SlotB:       Bye,
			BestOf:      roundBestOf(1, totalRounds, opts),
		})
	}

	// Rounds 2..totalRounds: match count halves each round, both slots
	// undetermined until winners propagate.
	for round := 2; round <= totalRounds; round++ {
		count := paddedLength >> uint(round)
		for m := 1; m <= count; m++ {
			matches = append(matches, &BracketMatch{
				Round:       round,
				MatchNumber: m,
				Bracket:     roundBracketType(round, totalRounds),
				SlotA:       Undetermined,
				SlotB:       Undetermined,
				BestOf:      roundBestOf(round, totalRounds, opts),
			})
		}
	}

	return matches, nil
}

// roundBracketType labels the final round 'finals'; everything before it
// stays on the winners side.
func roundBracketType(round, totalRounds int) models.BracketType {
	if round == totalRounds {
		return models.BracketFinals
	}
	return models.BracketWinners
}

// roundBestOf applies the series-length policy: the final uses FinalsBestOf,
// the semifinal is upgraded to at least best-of-3, everything else uses the
// default.
func roundBestOf(round, totalRounds int, opts Options) int {
	switch round {
	case totalRounds:
		return opts.FinalsBestOf
	case totalRounds - 1:
		return atLeast(opts.DefaultBestOf, 3)
	default:
		return opts.DefaultBestOf
	}
}
