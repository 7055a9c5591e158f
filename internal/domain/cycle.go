package domain

import "math"

// CycleStatus labels how a driver's hours compare to their cycle limit.
type CycleStatus string

const (
	CycleOK        CycleStatus = "OK"
	CycleNearLimit CycleStatus = "NEAR_LIMIT"
	CycleExceeded  CycleStatus = "EXCEEDED"
)

// nearLimitRatio is the share of the cycle limit at which a planned trip is
// flagged NEAR_LIMIT.
const nearLimitRatio = 0.9

// EvaluatePlannedCycle classifies a trip at planning time.
// Total hours at or above the limit are EXCEEDED; at or above 90% of it,
// NEAR_LIMIT; anything else OK.
//
// EvaluateRemainingCycle uses a different rule (no NEAR_LIMIT band) and the
// two can disagree for the same trip. Keep them separate.
func EvaluatePlannedCycle(hoursAlreadyUsed, durationHours, currentCycleUsed float64) CycleStatus {
	total := hoursAlreadyUsed + durationHours
	switch {
	case total >= currentCycleUsed:
		return CycleExceeded
	case total >= nearLimitRatio*currentCycleUsed:
		return CycleNearLimit
	default:
		return CycleOK
	}
}

// EvaluateRemainingCycle reports the hours left in the cycle after the trip,
// clamped at zero, and EXCEEDED only when the unclamped remainder is negative.
func EvaluateRemainingCycle(hoursAlreadyUsed, durationHours, currentCycleUsed float64) (CycleStatus, float64) {
	remaining := currentCycleUsed - (hoursAlreadyUsed + durationHours)
	if remaining < 0 {
		return CycleExceeded, 0
	}
	return CycleOK, remaining
}

// RouteSummary is the outward extract of a planned route.
type RouteSummary struct {
	DistanceKM     float64     `json:"distance_km"`
	DurationHours  float64     `json:"duration_hours"`
	CycleStatus    CycleStatus `json:"cycle_status"`
	HoursAfterTrip float64     `json:"hours_after_trip"`
}

// ELDStatus is the compliance check returned for a stored trip.
type ELDStatus struct {
	TripID         string      `json:"trip_id"`
	CycleStatus    CycleStatus `json:"cycle_status"`
	RemainingHours float64     `json:"remaining_hours"`
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MetersToKM converts meters to kilometres rounded to two decimals.
func MetersToKM(m float64) float64 { return round2(m / 1000) }

// SecondsToHours converts seconds to hours rounded to two decimals.
func SecondsToHours(s float64) float64 { return round2(s / 3600) }
