package scheduling

import "sort"

// Grid is the tournament's fixed discrete slot grid: the canonical ordered
// list of allowed start times per day. Gap blocking works in grid steps, so
// IntervalMinutes must match the spacing of Times.
type Grid struct {
	Times           []string
	IntervalMinutes int
}

// DefaultGrid covers six 30-minute evening slots.
func DefaultGrid() Grid {
	return Grid{
		Times:           []string{"18:00", "18:30", "19:00", "19:30", "20:00", "20:30"},
		IntervalMinutes: 30,
	}
}

// NewGrid builds a grid from arbitrary "15:04" times, sorted canonically.
func NewGrid(times []string, intervalMinutes int) Grid {
	ordered := make([]string, len(times))
	copy(ordered, times)
	sort.Strings(ordered)
	return Grid{Times: ordered, IntervalMinutes: intervalMinutes}
}

func (g Grid) indexOf(timeStr string) int {
	for i, t := range g.Times {
		if t == timeStr {
			return i
		}
	}
	return -1
}

// slotsToBlock is ceil(gapMinutes / interval): how many adjacent grid slots
// on each side of an occupied slot are unavailable for the same team.
func (g Grid) slotsToBlock(gapMinutes int) int {
	if gapMinutes <= 0 || g.IntervalMinutes <= 0 {
		return 0
	}
	return (gapMinutes + g.IntervalMinutes - 1) / g.IntervalMinutes
}
