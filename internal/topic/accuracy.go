package topic

import "math"

// RecomputeAccuracy derives the rolling accuracy percentage from the two
// running counters. ok is false when no answers have been recorded; the
// stored value must then be left untouched.
func RecomputeAccuracy(correct, wrong int) (accuracy float64, ok bool) {
	total := correct + wrong
	if total <= 0 {
		return 0, false
	}
	pct := float64(correct) / float64(total) * 100
	return math.Round(pct*100) / 100, true
}
