package domain

import "time"

// TimeSlot represents a candidate slot of an enumerated day
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
}

// DurationMinutes returns the slot length in minutes
func (s TimeSlot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}
