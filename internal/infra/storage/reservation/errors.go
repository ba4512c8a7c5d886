package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrNotCancellable возвращается, когда условная отмена не изменила ни одной строки
	// (credential уже использован или бронирование не в статусе confirmed)
	ErrNotCancellable = errors.New("reservation.repository: reservation cannot be cancelled")

	// ErrNoTransaction возвращается, когда блокировка даты запрошена вне транзакции
	ErrNoTransaction = errors.New("reservation.repository: date lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
