package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// DecisionReason is a machine-readable code of an availability decision
type DecisionReason string

const (
	ReasonAvailable             DecisionReason = "available"
	ReasonInvalidInterval       DecisionReason = "invalid_interval"
	ReasonResourceNotFound      DecisionReason = "resource_not_found"
	ReasonResourceInactive      DecisionReason = "resource_inactive"
	ReasonScheduleUnavailable   DecisionReason = "schedule_unavailable"
	ReasonOutsideOperatingHours DecisionReason = "outside_operating_hours"
	ReasonReservationConflict   DecisionReason = "reservation_conflict"
	ReasonCapacityExceeded      DecisionReason = "capacity_exceeded"
)

// ConflictInfo identifies the reservation that blocks a request
type ConflictInfo struct {
	ReservationID int64
	StartTime     time.Time
	EndTime       time.Time
}

// WindowBounds are the bounds of the window nearest to a rejected request
type WindowBounds struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// AvailabilityDecision is the outcome of an availability check.
// Negative outcomes are regular values, not errors.
type AvailabilityDecision struct {
	Available     bool
	Reason        DecisionReason
	Message       string
	Conflict      *ConflictInfo
	NearestWindow *WindowBounds
}

// Available returns a positive decision
func Available() AvailabilityDecision {
	return AvailabilityDecision{Available: true, Reason: ReasonAvailable, Message: "available"}
}

// Unavailable returns a negative decision without details
func Unavailable(reason DecisionReason, message string) AvailabilityDecision {
	return AvailabilityDecision{Reason: reason, Message: message}
}

// OutsideOperatingHours returns a negative decision citing the nearest window
func OutsideOperatingHours(nearest AvailabilityWindow) AvailabilityDecision {
	return AvailabilityDecision{
		Reason: ReasonOutsideOperatingHours,
		Message: fmt.Sprintf("outside operating hours, nearest window is %s-%s",
			nearest.StartTime, nearest.EndTime),
		NearestWindow: &WindowBounds{StartTime: nearest.StartTime, EndTime: nearest.EndTime},
	}
}

// Conflicting returns a negative decision citing the blocking reservation
func Conflicting(r *Reservation) AvailabilityDecision {
	return AvailabilityDecision{
		Reason: ReasonReservationConflict,
		Message: fmt.Sprintf("conflicting reservation %d [%s, %s)",
			r.ID, r.StartTime.Format(time.RFC3339), r.EndTime.Format(time.RFC3339)),
		Conflict: &ConflictInfo{
			ReservationID: r.ID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
		},
	}
}
