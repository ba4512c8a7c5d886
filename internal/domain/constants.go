package domain

// Scheduling constants
const (
	SlotStepMinutes = 15 // сетка начала слотов
	LeadTimeMinutes = 60 // минимальное время до начала бронирования на сегодня
	MaxWeekOfMonth  = 6  // формула недели месяца даёт до 6 недель
)

// Business validation constants
const (
	MaxCustomerNameLength  = 100
	MaxCustomerPhoneLength = 32
	MaxCustomerEmailLength = 254
	MaxNotesLength         = 500
	MaxCancelReasonLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
