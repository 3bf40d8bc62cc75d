// Package scheduling assigns concrete start times to pending matches from
// the availability slots both teams submitted, never double-booking a team
// and enforcing a minimum rest gap. The pass is deterministic and greedy:
// re-running it against its own output changes nothing.
package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/oflinehulk/showyours-core/models"
)

// ReasonNoOverlap marks a genuine scheduling conflict, as opposed to
// missing input.
const ReasonNoOverlap = "no overlapping available slots"

// ReasonMissingAvailability distinguishes missing input from conflicts and
// names the team that never submitted slots for the match.
func ReasonMissingAvailability(teamID int) string {
	return fmt.Sprintf("no availability submitted for team %d", teamID)
}

// Assignment is a successfully scheduled match.
type Assignment struct {
	MatchID       int       `json:"match_id"`
	ScheduledTime time.Time `json:"scheduled_time"`
}

// Unschedulable reports a match the pass could not place, with a reason a
// host can act on.
type Unschedulable struct {
	MatchID int    `json:"match_id"`
	Reason  string `json:"reason"`
}

// Result is the full scheduling report. Persisting the assignments is the
// caller's job.
type Result struct {
	Scheduled     []Assignment    `json:"scheduled"`
	Unschedulable []Unschedulable `json:"unschedulable"`
}

// Request is one scheduling run over a consistent snapshot of the match
// list. Availability maps match id to the slots submitted for that specific
// match (teams may offer different availability per match).
type Request struct {
	Matches      []*models.Match
	Availability map[int][]models.AvailabilitySlot
	GapMinutes   int
	Grid         Grid
}

type slotKey struct {
	date string
	time string
}

func (k slotKey) String() string { return k.date + " " + k.time }

type scheduler struct {
	grid       Grid
	gapSlots   int
	occupied   map[int]map[slotKey]bool // team id -> blocked slots
	scheduled  []Assignment
	impossible []Unschedulable
}

func newScheduler(grid Grid, gapMinutes int) *scheduler {
	return &scheduler{
		grid:     grid,
		gapSlots: grid.slotsToBlock(gapMinutes),
		occupied: make(map[int]map[slotKey]bool),
	}
}

// Schedule runs the single deterministic pass described above. Occupied-slot
// bookkeeping is rebuilt from already-scheduled matches on every invocation;
// no state survives between runs.
func Schedule(req Request) *Result {
	s := newScheduler(req.Grid, req.GapMinutes)

	// Pass 0: matches that already carry a time block their slot and its
	// gap-neighbors for both teams.
	for _, m := range req.Matches {
		if m.ScheduledTime == nil {
			continue
		}
		key := keyFromTime(*m.ScheduledTime)
		if m.TeamAID != nil {
			s.block(*m.TeamAID, key)
		}
		if m.TeamBID != nil {
			s.block(*m.TeamBID, key)
		}
	}

	// Earlier rounds first: deterministic, explainable output.
	pending := make([]*models.Match, 0, len(req.Matches))
	for _, m := range req.Matches {
		if m.ScheduledTime == nil && m.TeamAID != nil && m.TeamBID != nil {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		if a.Bracket != b.Bracket {
			return bracketRank(a.Bracket) < bracketRank(b.Bracket)
		}
		return a.MatchNumber < b.MatchNumber
	})

	for _, m := range pending {
		s.place(m, req.Availability[m.ID])
	}

	return &Result{Scheduled: s.scheduled, Unschedulable: s.impossible}
}

func bracketRank(b models.BracketType) int {
	switch b {
	case models.BracketWinners:
		return 0
	case models.BracketLosers:
		return 1
	default:
		return 2
	}
}

func (s *scheduler) place(m *models.Match, slots []models.AvailabilitySlot) {
	teamA, teamB := *m.TeamAID, *m.TeamBID

	slotsA := make(map[slotKey]bool)
	slotsB := make(map[slotKey]bool)
	for _, slot := range slots {
		key := slotKey{date: slot.Date, time: slot.Time}
		switch slot.TeamID {
		case teamA:
			slotsA[key] = true
		case teamB:
			slotsB[key] = true
		}
	}

	if len(slotsA) == 0 {
		s.impossible = append(s.impossible, Unschedulable{MatchID: m.ID, Reason: ReasonMissingAvailability(teamA)})
		return
	}
	if len(slotsB) == 0 {
		s.impossible = append(s.impossible, Unschedulable{MatchID: m.ID, Reason: ReasonMissingAvailability(teamB)})
		return
	}

	common := make([]slotKey, 0, len(slotsA))
	for key := range slotsA {
		if slotsB[key] {
			common = append(common, key)
		}
	}
	// Chronological walk; date and time strings sort lexically in time order.
	sort.Slice(common, func(i, j int) bool {
		if common[i].date != common[j].date {
			return common[i].date < common[j].date
		}
		return common[i].time < common[j].time
	})

	for _, key := range common {
		if s.occupied[teamA][key] || s.occupied[teamB][key] {
			continue
		}
		when, err := time.Parse("2006-01-02 15:04", key.String())
		if err != nil {
			// Malformed submitted slot; skip it rather than fail the match.
			continue
		}
		s.scheduled = append(s.scheduled, Assignment{MatchID: m.ID, ScheduledTime: when})
		s.block(teamA, key)
		s.block(teamB, key)
		return
	}

	s.impossible = append(s.impossible, Unschedulable{MatchID: m.ID, Reason: ReasonNoOverlap})
}

// block marks the slot and every grid slot within the rest gap, clipped at
// the day's grid boundary, as occupied for the team.
func (s *scheduler) block(teamID int, key slotKey) {
	occ := s.occupied[teamID]
	if occ == nil {
		occ = make(map[slotKey]bool)
		s.occupied[teamID] = occ
	}
	occ[key] = true

	idx := s.grid.indexOf(key.time)
	if idx < 0 {
		return
	}
	for i := idx - s.gapSlots; i <= idx+s.gapSlots; i++ {
		if i < 0 || i >= len(s.grid.Times) {
			continue
		}
		occ[slotKey{date: key.date, time: s.grid.Times[i]}] = true
	}
}

func keyFromTime(t time.Time) slotKey {
	return slotKey{date: t.Format("2006-01-02"), time: t.Format("15:04")}
}
