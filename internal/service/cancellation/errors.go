package cancellation

import "errors"

var (
	// ErrNotFound credential не найден. Неизвестный и уже использованный credential неотличимы.
	ErrNotFound = errors.New("cancellation: reservation not found")

	// ErrAlreadyCancelled бронирование уже не в статусе confirmed; ничего не изменено
	ErrAlreadyCancelled = errors.New("cancellation: reservation already cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных (слишком длинная причина)
	ErrInvalidInput = errors.New("cancellation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("cancellation: internal error")
)
