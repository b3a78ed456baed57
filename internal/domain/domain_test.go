package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"adjacent", Interval{at(10, 0), at(11, 0)}, Interval{at(11, 0), at(12, 0)}, false},
		{"partial", Interval{at(10, 0), at(11, 0)}, Interval{at(10, 30), at(11, 30)}, true},
		{"contained", Interval{at(9, 0), at(12, 0)}, Interval{at(10, 0), at(11, 0)}, true},
		{"identical", Interval{at(10, 0), at(11, 0)}, Interval{at(10, 0), at(11, 0)}, true},
		{"disjoint", Interval{at(8, 0), at(9, 0)}, Interval{at(10, 0), at(11, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestReservation_IsActive(t *testing.T) {
	for status, want := range map[ReservationStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusCompleted: false,
	} {
		r := Reservation{Status: status}
		assert.Equal(t, want, r.IsActive(), status)
		assert.Equal(t, want, r.CanBeCancelled(), status)
	}
}

func TestResource_ActiveWindowsFor(t *testing.T) {
	r := Resource{Windows: []AvailabilityWindow{
		{DayOfWeek: time.Monday, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("12:00"), IsActive: true},
		{DayOfWeek: time.Monday, StartTime: types.MustTimeString("14:00"), EndTime: types.MustTimeString("18:00"), IsActive: false},
		{DayOfWeek: time.Tuesday, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("18:00"), IsActive: true},
	}}

	windows := r.ActiveWindowsFor(time.Monday)
	assert.Len(t, windows, 1)
	assert.Equal(t, "09:00", windows[0].StartTime.String())
	assert.Empty(t, r.ActiveWindowsFor(time.Sunday))
}

func TestAvailabilityWindow_GapMinutes(t *testing.T) {
	w := AvailabilityWindow{StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("12:00")}

	assert.Equal(t, 60, w.GapMinutes(types.MustTimeString("07:00"), types.MustTimeString("08:00")))
	assert.Equal(t, 30, w.GapMinutes(types.MustTimeString("12:30"), types.MustTimeString("13:00")))
	assert.Equal(t, 0, w.GapMinutes(types.MustTimeString("11:00"), types.MustTimeString("13:00")))
	assert.True(t, w.Contains(types.MustTimeString("09:00"), types.MustTimeString("12:00")))
	assert.False(t, w.Contains(types.MustTimeString("08:59"), types.MustTimeString("10:00")))
}

func TestSubscriptionPlan_PenaltyPolicy(t *testing.T) {
	plan := SubscriptionPlan{
		PenaltyGracePeriodDays: ptr.Ptr(5),
		PenaltyMaxRate:         ptr.Ptr(0.25),
	}

	policy := plan.PenaltyPolicy(DefaultPenaltyPolicy())

	assert.Equal(t, 5, policy.GracePeriodDays)
	assert.InDelta(t, 0.05, policy.BaseRate, 1e-12)
	assert.InDelta(t, 0.005, policy.DailyRate, 1e-12)
	assert.InDelta(t, 0.25, policy.MaxRate, 1e-12)
}
