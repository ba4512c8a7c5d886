package slots

import "github.com/m04kA/SMC-ReservationEngine/internal/domain"

// Rules параметры сетки и опережения; одни и те же для показа и для записи
type Rules struct {
	StepMinutes     int
	LeadTimeMinutes int
}

// DefaultRules сетка 15 минут, опережение 60 минут
func DefaultRules() Rules {
	return Rules{
		StepMinutes:     domain.SlotStepMinutes,
		LeadTimeMinutes: domain.LeadTimeMinutes,
	}
}

func (r Rules) step() int {
	if r.StepMinutes <= 0 {
		return domain.SlotStepMinutes
	}
	return r.StepMinutes
}
