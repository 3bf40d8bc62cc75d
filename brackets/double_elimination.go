package brackets

import (
	"context"
	"math"

	"github.com/oflinehulk/showyours-core/models"
)

type DoubleEliminationGenerator struct{}

func NewDoubleEliminationGenerator() Generator {
	return &DoubleEliminationGenerator{}
}

func (g *DoubleEliminationGenerator) GetName() string {
	return "DoubleElimination"
}

// GenerateBracket builds winners bracket, losers bracket and a single grand
// finals match.
//
// The winners side is the single-elimination layout, except its last round
// keeps bracket_type 'winners' and is not forced beyond the usual semifinal
// upgrade. The losers bracket has 2*(totalRounds-1) rounds; alternating
// rounds are pure-LB (survivors face each other) and mixed (survivors face
// winners-bracket dropouts), so match counts shrink by half every two
// rounds: for losers round r, pairIndex = (r-1)/2 and
// matchCount = max(paddedLength / 2^(pairIndex+2), 1).
func (g *DoubleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateParams) ([]*BracketMatch, error) {
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

	matches := make([]*BracketMatch, 0, 2*paddedLength)

	// Winners side. Same pairing and bye layout as single elimination, but
	// every round stays 'winners' and only the semifinal upgrade applies.
	playing := n - numByes
	matchNumber := 0
	for i := 0; i < playing; i += 2 {
		matchNumber++
		matches = append(matches, &BracketMatch{
			Round:       1,
			MatchNumber: matchNumber,
			Bracket:     models.BracketWinners,
			SlotA:       TeamSlot(params.TeamIDs[i]),
			SlotB:       TeamSlot(params.TeamIDs[i+1]),
			BestOf:      winnersBestOf(1, totalRounds, opts),
		})
	}
	for i := playing; i < n; i++ {
		matchNumber++
		matches = append(matches, &BracketMatch{
			Round:       1,
			MatchNumber: matchNumber,
			Bracket:     models.BracketWinners,
			SlotA:       TeamSlot(params.TeamIDs[i]),
			SlotB:       Bye,
			BestOf:      winnersBestOf(1, totalRounds, opts),
		})
	}
	for round := 2; round <= totalRounds; round++ {
		count := paddedLength >> uint(round)
		for m := 1; m <= count; m++ {
			matches = append(matches, &BracketMatch{
				Round:       round,
				MatchNumber: m,
				Bracket:     models.BracketWinners,
				SlotA:       Undetermined,
				SlotB:       Undetermined,
				BestOf:      winnersBestOf(round, totalRounds, opts),
			})
		}
	}

	// Losers side. All slots undetermined: which winners-bracket loser feeds
	// which losers match is decided by the result-entry path, not here.
	losersRounds := 2 * (totalRounds - 1)
	for r := 1; r <= losersRounds; r++ {
		pairIndex := (r - 1) / 2
		count := paddedLength >> uint(pairIndex+2)
		if count < 1 {
			count = 1
		}
		bestOf := opts.DefaultBestOf
		if r == losersRounds {
			bestOf = atLeast(bestOf, 3)
		}
		for m := 1; m <= count; m++ {
			matches = append(matches, &BracketMatch{
				Round:       r,
				MatchNumber: m,
				Bracket:     models.BracketLosers,
				SlotA:       Undetermined,
				SlotB:       Undetermined,
				BestOf:      bestOf,
			})
		}
	}

	// Grand finals: winners-bracket champion vs losers-bracket champion.
	matches = append(matches, &BracketMatch{
		Round:       totalRounds + 1,
		MatchNumber: 1,
		Bracket:     models.BracketFinals,
		SlotA:       Undetermined,
		SlotB:       Undetermined,
		BestOf:      opts.FinalsBestOf,
	})

	return matches, nil
}

func winnersBestOf(round, totalRounds int, opts Options) int {
	if round == totalRounds-1 {
		return atLeast(opts.DefaultBestOf, 3)
	}
	return opts.DefaultBestOf
}
