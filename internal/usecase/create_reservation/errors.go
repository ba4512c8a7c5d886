package create_reservation

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrClosed возвращается, когда в указанную дату нет часов работы
	ErrClosed = errors.New("create_reservation: closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время начала не лежит на сетке от открытия
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrOutsideBusinessHours возвращается, когда слот начинается до открытия или заканчивается после закрытия
	ErrOutsideBusinessHours = errors.New("create_reservation: slot is outside business hours")

	// ErrTooLateToBook возвращается, когда слот на сегодня нарушает правило опережения
	ErrTooLateToBook = errors.New("create_reservation: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с подтверждённым бронированием
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
