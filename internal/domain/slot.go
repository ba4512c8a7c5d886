package domain

import "github.com/m04kA/SMC-ReservationEngine/pkg/types"

// CandidateSlot кандидат [Start, End) на сетке 15 минут; не сохраняется
type CandidateSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// DurationMinutes returns the slot length
func (s CandidateSlot) DurationMinutes() int {
	return s.End.Minutes() - s.Start.Minutes()
}

// Overlaps reports whether two half-open ranges intersect; touching endpoints do not
func (s CandidateSlot) Overlaps(start, end types.TimeString) bool {
	return s.Start.Minutes() < end.Minutes() && start.Minutes() < s.End.Minutes()
}
