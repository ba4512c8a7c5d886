package slots

import (
	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

// Overlaps полуинтервалы [s1,e1) и [s2,e2) пересекаются, если s1 < e2 && s2 < e1.
// Касание концами пересечением не считается.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// HasOverlap проверяет [start,end) против подтверждённых бронирований даты.
// Отменённые бронирования время не занимают.
func HasOverlap(start, end types.TimeString, reservations []*domain.Reservation) bool {
	s, e := start.Minutes(), end.Minutes()
	for _, r := range reservations {
		if r == nil || !r.IsConfirmed() {
			continue
		}
		rs, re := r.Interval()
		if Overlaps(s, e, rs, re) {
			return true
		}
	}
	return false
}

// FilterAvailable оставляет слоты, не пересекающиеся ни с одним подтверждённым бронированием
func FilterAvailable(candidates []domain.CandidateSlot, reservations []*domain.Reservation) []domain.CandidateSlot {
	available := make([]domain.CandidateSlot, 0, len(candidates))
	for _, c := range candidates {
		if !HasOverlap(c.Start, c.End, reservations) {
			available = append(available, c)
		}
	}
	return available
}
