package availability

// Slot интервал [start, end) в формате HH:MM
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Entry рассчитанная доступность даты для одной услуги
type Entry struct {
	IsClosed        bool   `json:"isClosed"`
	ClosedReason    string `json:"closedReason,omitempty"`
	OpenTime        string `json:"openTime,omitempty"`
	CloseTime       string `json:"closeTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}
