package scheduling

import (
	"testing"
	"time"

	"github.com/oflinehulk/showyours-core/models"
)

func pendingMatch(id, round, number, teamA, teamB int) *models.Match {
	return &models.Match{
		ID:          id,
		Round:       round,
		MatchNumber: number,
		Bracket:     models.BracketWinners,
		TeamAID:     &teamA,
		TeamBID:     &teamB,
		Status:      models.MatchStatusPending,
	}
}

func avail(teamID, matchID int, date, timeStr string) models.AvailabilitySlot {
	return models.AvailabilitySlot{TeamID: teamID, MatchID: matchID, Date: date, Time: timeStr}
}

func TestScheduleSingleOverlap(t *testing.T) {
	m := pendingMatch(1, 1, 1, 10, 20)
	res := Schedule(Request{
		Matches: []*models.Match{m},
		Availability: map[int][]models.AvailabilitySlot{
			1: {
				avail(10, 1, "2026-09-01", "18:00"),
				avail(10, 1, "2026-09-01", "19:00"),
				avail(20, 1, "2026-09-01", "19:00"),
				avail(20, 1, "2026-09-02", "18:00"),
			},
		},
		GapMinutes: 60,
		Grid:       DefaultGrid(),
	})

	if len(res.Unschedulable) != 0 {
		t.Fatalf("unexpected unschedulable entries: %+v", res.Unschedulable)
	}
	if len(res.Scheduled) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(res.Scheduled))
	}
	want, _ := time.Parse("2006-01-02 15:04", "2026-09-01 19:00")
	if !res.Scheduled[0].ScheduledTime.Equal(want) {
		t.Errorf("expected the single overlapping slot %v, got %v", want, res.Scheduled[0].ScheduledTime)
	}
}

func TestScheduleNoOverlap(t *testing.T) {
	m := pendingMatch(1, 1, 1, 10, 20)
	res := Schedule(Request{
		Matches: []*models.Match{m},
		Availability: map[int][]models.AvailabilitySlot{
			1: {
				avail(10, 1, "2026-09-01", "18:00"),
				avail(20, 1, "2026-09-01", "20:30"),
			},
		},
		GapMinutes: 60,
		Grid:       DefaultGrid(),
	})

	if len(res.Scheduled) != 0 {
		t.Fatalf("nothing should be scheduled: %+v", res.Scheduled)
	}
	if len(res.Unschedulable) != 1 || res.Unschedulable[0].Reason != ReasonNoOverlap {
		t.Fatalf("expected %q, got %+v", ReasonNoOverlap, res.Unschedulable)
	}
}

func TestScheduleMissingAvailabilityNamesTeam(t *testing.T) {
	// Team 20 submitted nothing for this match.
	m := pendingMatch(1, 1, 1, 10, 20)
	res := Schedule(Request{
		Matches: []*models.Match{m},
		Availability: map[int][]models.AvailabilitySlot{
			1: {avail(10, 1, "2026-09-01", "18:00")},
		},
		GapMinutes: 60,
		Grid:       DefaultGrid(),
	})

	if len(res.Unschedulable) != 1 {
		t.Fatalf("expected 1 unschedulable, got %+v", res.Unschedulable)
	}
	if got, want := res.Unschedulable[0].Reason, ReasonMissingAvailability(20); got != want {
		t.Errorf("reason = %q, want %q", got, want)
	}

	// And when neither submitted, team A is named first.
	res = Schedule(Request{
		Matches:      []*models.Match{pendingMatch(2, 1, 1, 10, 20)},
		Availability: map[int][]models.AvailabilitySlot{},
		GapMinutes:   60,
		Grid:         DefaultGrid(),
	})
	if got, want := res.Unschedulable[0].Reason, ReasonMissingAvailability(10); got != want {
		t.Errorf("reason = %q, want %q", got, want)
	}
}

func TestScheduleEnforcesGap(t *testing.T) {
	// Team 10 plays in both matches; with a 60-minute gap the 18:30 and
	// 19:00 slots around an 18:00 assignment are blocked.
	m1 := pendingMatch(1, 1, 1, 10, 20)
	m2 := pendingMatch(2, 1, 2, 10, 30)
	res := Schedule(Request{
		Matches: []*models.Match{m1, m2},
		Availability: map[int][]models.AvailabilitySlot{
			1: {
				avail(10, 1, "2026-09-01", "18:00"),
				avail(20, 1, "2026-09-01", "18:00"),
			},
			2: {
				avail(10, 2, "2026-09-01", "18:30"),
				avail(10, 2, "2026-09-01", "19:00"),
				avail(10, 2, "2026-09-01", "19:30"),
				avail(30, 2, "2026-09-01", "18:30"),
				avail(30, 2, "2026-09-01", "19:00"),
				avail(30, 2, "2026-09-01", "19:30"),
			},
		},
		GapMinutes: 60,
		Grid:       DefaultGrid(),
	})

	if len(res.Scheduled) != 2 {
		t.Fatalf("expected both matches scheduled, got %+v / %+v", res.Scheduled, res.Unschedulable)
	}
	byMatch := map[int]time.Time{}
	for _, a := range res.Scheduled {
		byMatch[a.MatchID] = a.ScheduledTime
	}
	want, _ := time.Parse("2006-01-02 15:04", "2026-09-01 19:30")
	if !byMatch[2].Equal(want) {
		t.Errorf("match 2 should land on 19:30 (first slot outside the gap), got %v", byMatch[2])
	}
}

func TestScheduleRespectsExistingAssignments(t *testing.T) {
	// Match 1 is already on the calendar at 18:00; the pass must treat that
	// slot and its gap-neighbors as occupied for team 10.
	at, _ := time.Parse("2006-01-02 15:04", "2026-09-01 18:00")
	teamA, teamB := 10, 20
	scheduledAlready := &models.Match{
		ID: 1, Round: 1, MatchNumber: 1, Bracket: models.BracketWinners,
		TeamAID: &teamA, TeamBID: &teamB, ScheduledTime: &at,
	}
	m2 := pendingMatch(2, 2, 1, 10, 30)
	res := Schedule(Request{
		Matches: []*models.Match{scheduledAlready, m2},
		Availability: map[int][]models.AvailabilitySlot{
			2: {
				avail(10, 2, "2026-09-01", "18:30"),
				avail(30, 2, "2026-09-01", "18:30"),
			},
		},
		GapMinutes: 60,
		Grid:       DefaultGrid(),
	})

	if len(res.Scheduled) != 0 {
		t.Fatalf("18:30 is inside team 10's rest gap, got %+v", res.Scheduled)
	}
	if len(res.Unschedulable) != 1 || res.Unschedulable[0].Reason != ReasonNoOverlap {
		t.Fatalf("expected conflict report, got %+v", res.Unschedulable)
	}
}

func TestScheduleDeterministicOrder(t *testing.T) {
	// Two matches compete for one slot; the earlier round wins regardless of
	// input order.
	mEarly := pendingMatch(1, 1, 1, 10, 20)
	mLate := pendingMatch(2, 2, 1, 10, 30)
	availability := map[int][]models.AvailabilitySlot{
		1: {
			avail(10, 1, "2026-09-01", "18:00"),
			avail(20, 1, "2026-09-01", "18:00"),
		},
		2: {
			avail(10, 2, "2026-09-01", "18:00"),
			avail(30, 2, "2026-09-01", "18:00"),
		},
	}

	for _, order := range [][]*models.Match{
		{mEarly, mLate},
		{mLate, mEarly},
	} {
		res := Schedule(Request{Matches: order, Availability: availability, GapMinutes: 60, Grid: DefaultGrid()})
		if len(res.Scheduled) != 1 || res.Scheduled[0].MatchID != 1 {
			t.Fatalf("round 1 match must win the slot, got %+v", res.Scheduled)
		}
		if len(res.Unschedulable) != 1 || res.Unschedulable[0].MatchID != 2 {
			t.Fatalf("round 2 match should be reported unschedulable, got %+v", res.Unschedulable)
		}
	}
}

func TestScheduleIdempotentRerun(t *testing.T) {
	m1 := pendingMatch(1, 1, 1, 10, 20)
	m2 := pendingMatch(2, 1, 2, 30, 40)
	availability := map[int][]models.AvailabilitySlot{
		1: {
			avail(10, 1, "2026-09-01", "18:00"),
			avail(20, 1, "2026-09-01", "18:00"),
		},
		2: {
			avail(30, 2, "2026-09-01", "19:00"),
			avail(40, 2, "2026-09-01", "19:00"),
		},
	}
	req := Request{Matches: []*models.Match{m1, m2}, Availability: availability, GapMinutes: 60, Grid: DefaultGrid()}

	first := Schedule(req)
	if len(first.Scheduled) != 2 {
		t.Fatalf("expected both matches scheduled: %+v", first)
	}

	// Apply the output and re-run: nothing further should change.
	for _, a := range first.Scheduled {
		when := a.ScheduledTime
		if a.MatchID == 1 {
			m1.ScheduledTime = &when
		} else {
			m2.ScheduledTime = &when
		}
	}
	second := Schedule(req)
	if len(second.Scheduled) != 0 || len(second.Unschedulable) != 0 {
		t.Fatalf("re-run against own output must be a no-op, got %+v", second)
	}
}

func TestScheduleSkipsMatchesWithoutBothTeams(t *testing.T) {
	teamA := 10
	undetermined := &models.Match{ID: 1, Round: 2, MatchNumber: 1, TeamAID: &teamA}
	res := Schedule(Request{
		Matches:    []*models.Match{undetermined},
		GapMinutes: 60,
		Grid:       DefaultGrid(),
	})
	if len(res.Scheduled) != 0 || len(res.Unschedulable) != 0 {
		t.Fatalf("matches without both teams are not scheduling candidates: %+v", res)
	}
}
