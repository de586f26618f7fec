package service

import (
	"time"

	"construction-stage-api/internal/domain"
)

// ComputeDuration derives the stage duration from its time window.
// A nil end yields a nil duration: the value is meaningless without an
// end boundary. Both instants are truncated to whole hours before
// differencing; sub-hour precision is not part of the duration model.
//
// Callers must have already enforced end >= start. Behavior for a
// reversed window is undefined here on purpose.
func ComputeDuration(start time.Time, end *time.Time, unit domain.DurationUnit) *float64 {
	if end == nil {
		return nil
	}

	s := start.UTC().Truncate(time.Hour)
	e := end.UTC().Truncate(time.Hour)

	totalHours := int64(e.Sub(s) / time.Hour)
	days := totalHours / 24
	hours := totalHours % 24 // residual, in [0,23]

	var d float64
	switch unit {
	case domain.DurationUnitHours:
		d = float64(days*24 + hours)
	case domain.DurationUnitWeeks:
		d = float64(days)/7 + float64(hours)/(7*24)
	default: // DAYS
		d = float64(days) + float64(hours)/24
	}
	return &d
}
