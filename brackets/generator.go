package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/oflinehulk/showyours-core/models"
)

// ErrInsufficientTeams is returned when fewer than two teams are offered to
// any generator. Nothing is produced in that case.
var ErrInsufficientTeams = errors.New("not enough teams to generate a bracket (minimum 2)")

// SlotKind distinguishes the two reasons a bracket slot can be empty: a bye
// slot will never be filled, an undetermined slot awaits a winner from an
// earlier round.
type SlotKind int

const (
	SlotUndetermined SlotKind = iota
	SlotBye
	SlotTeam
)

// Slot is one side of a generated match.
type Slot struct {
	Kind   SlotKind
	TeamID int
}

func TeamSlot(teamID int) Slot { return Slot{Kind: SlotTeam, TeamID: teamID} }

var (
	Bye          = Slot{Kind: SlotBye}
	Undetermined = Slot{Kind: SlotUndetermined}
)

// TeamIDPtr maps the slot onto the nullable column shape used by the match
// store. Both bye and undetermined collapse to nil there; the distinction
// only exists inside the generator output.
func (s Slot) TeamIDPtr() *int {
	if s.Kind != SlotTeam {
		return nil
	}
	id := s.TeamID
	return &id
}

// BracketMatch is one generated match slot. Generators return the full
// skeleton before any results exist; every match starts pending with zero
// scores and no winner, persistence is the caller's job.
type BracketMatch struct {
	Round       int
	MatchNumber int
	Bracket     models.BracketType
	SlotA       Slot
	SlotB       Slot
	BestOf      int
}

// IsBye reports whether the match is an automatic advance for SlotA.
func (m *BracketMatch) IsBye() bool {
	return m.SlotA.Kind == SlotTeam && m.SlotB.Kind == SlotBye
}

// Options tune a generation run. Zero values fall back to the defaults
// applied by normalize.
type Options struct {
	DefaultBestOf int
	FinalsBestOf  int
	StageID       *int
	GroupID       *int
}

func (o Options) normalize() (Options, error) {
	if o.DefaultBestOf == 0 {
		o.DefaultBestOf = 1
	}
	if o.FinalsBestOf == 0 {
		o.FinalsBestOf = 5
	}
	if !validBestOf(o.DefaultBestOf) {
		return o, fmt.Errorf("invalid default best_of %d: must be 1, 3 or 5", o.DefaultBestOf)
	}
	if !validBestOf(o.FinalsBestOf) {
		return o, fmt.Errorf("invalid finals best_of %d: must be 1, 3 or 5", o.FinalsBestOf)
	}
	return o, nil
}

func validBestOf(n int) bool {
	return n == 1 || n == 3 || n == 5
}

// GenerateParams carries the seed-ordered team ids (seed 1 first) for one
// generation run.
type GenerateParams struct {
	TournamentID int
	TeamIDs      []int
	Options      Options
}

// Generator builds the full match-slot skeleton for one bracket format.
type Generator interface {
	GenerateBracket(ctx context.Context, params GenerateParams) ([]*BracketMatch, error)

	GetName() string
}

// atLeast upgrades a best-of to a floor, used for semifinal and losers-final
// rounds.
func atLeast(bestOf, floor int) int {
	if bestOf < floor {
		return floor
	}
	return bestOf
}
