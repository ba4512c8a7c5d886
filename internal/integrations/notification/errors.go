package notification

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notification client: internal error")

	// ErrRejected возвращается, когда сервис уведомлений не принял сообщение
	ErrRejected = errors.New("notification client: notification rejected")
)
