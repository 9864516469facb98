package helper

import "math"

// Percentage returns round(100*part/total), half away from zero.
// When total is zero it returns whenEmpty.
func Percentage(part, total int64, whenEmpty int) int {
	if total == 0 {
		return whenEmpty
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}
