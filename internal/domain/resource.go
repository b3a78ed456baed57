package domain

import (
	"slices"
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Resource represents a bookable studio, room or piece of equipment
type Resource struct {
	ID       int64
	Name     string
	IsActive bool
	Capacity *int // NULL = unlimited attendees

	// Windows ordered by (DayOfWeek, StartTime)
	Windows []AvailabilityWindow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveWindowsFor returns active windows for the weekday, ordered by start time
func (r *Resource) ActiveWindowsFor(day time.Weekday) []AvailabilityWindow {
	windows := make([]AvailabilityWindow, 0, len(r.Windows))
	for _, w := range r.Windows {
		if w.IsActive && w.DayOfWeek == day {
			windows = append(windows, w)
		}
	}
	slices.SortFunc(windows, func(a, b AvailabilityWindow) int {
		return a.StartTime.Minutes() - b.StartTime.Minutes()
	})
	return windows
}

// AcceptsAttendees returns true if the resource capacity allows the attendee count
func (r *Resource) AcceptsAttendees(count int) bool {
	return r.Capacity == nil || count <= *r.Capacity
}

// AvailabilityWindow is a weekly opening interval of a resource.
// Multiple windows per day are allowed and need not be contiguous.
type AvailabilityWindow struct {
	ID         int64
	ResourceID int64
	DayOfWeek  time.Weekday // Sunday = 0
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsActive   bool
}

// IsValid checks day range and StartTime < EndTime
func (w *AvailabilityWindow) IsValid() bool {
	if w.DayOfWeek < time.Sunday || w.DayOfWeek > time.Saturday {
		return false
	}
	if w.StartTime.IsZero() || w.EndTime.IsZero() {
		return false
	}
	return w.StartTime.IsBefore(w.EndTime)
}

// Contains returns true if [start, end) lies fully inside the window
func (w *AvailabilityWindow) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// GapMinutes returns the distance in minutes between [start, end) and the window,
// 0 if they intersect
func (w *AvailabilityWindow) GapMinutes(start, end types.TimeString) int {
	switch {
	case !end.IsAfter(w.StartTime):
		return w.StartTime.Minutes() - end.Minutes()
	case !start.IsBefore(w.EndTime):
		return start.Minutes() - w.EndTime.Minutes()
	default:
		return 0
	}
}
