package timedataset

import "time"

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}
	return t[len(t)-1]
}

// MonthEnds generates n month end dates immediately following the month
// of the after time. These form the time axis of a monthly forecast
// horizon.
func MonthEnds(after time.Time, n int) []time.Time {
	if n < 1 {
		return nil
	}
	t := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		// day zero of the next month normalizes to the last day of this one
		t = append(t, time.Date(after.Year(), after.Month()+time.Month(i)+1, 0, 0, 0, 0, 0, after.Location()))
	}
	return t
}
