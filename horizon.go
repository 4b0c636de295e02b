package emicast

import "time"

// HorizonMonths returns the number of monthly forecast steps from the
// month of last through December of targetYear. The result is floored
// at 1 so a target year at or before the data's last year still yields a
// single step forecast instead of zero or a negative count.
func HorizonMonths(last time.Time, targetYear int) int {
	h := (targetYear-last.Year())*12 + int(time.December) - int(last.Month())
	if h < 1 {
		h = 1
	}
	return h
}
