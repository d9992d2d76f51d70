package attendance

import (
	"math"
	"time"
)

// HalfDayThresholdMinutes is the net work time under which a completed shift
// is recorded as a half-day rather than a full present day.
const HalfDayThresholdMinutes = 240

// BreakMinutes sums the lengths of all closed breaks in whole minutes.
// Open breaks are excluded until they close.
func BreakMinutes(breaks []BreakPeriod) int {
	total := 0
	for _, b := range breaks {
		if b.End == nil {
			continue
		}
		total += roundMinutes(b.End.Sub(b.Start))
	}
	return total
}

// WorkMinutes computes the net work time for a completed shift: the shift
// length in whole minutes minus the break total, floored at zero.
func WorkMinutes(punchIn, punchOut time.Time, breakMinutes int) int {
	shift := roundMinutes(punchOut.Sub(punchIn))
	if work := shift - breakMinutes; work > 0 {
		return work
	}
	return 0
}

// StatusForWork determines the punch-out status from the net work minutes.
func StatusForWork(workMinutes int) Status {
	if workMinutes < HalfDayThresholdMinutes {
		return StatusHalfDay
	}
	return StatusPresent
}

// roundMinutes converts d to whole minutes, rounding halves away from zero.
func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
