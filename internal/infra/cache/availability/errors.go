package availability

import "errors"

var (
	// ErrNilClient возвращается, когда кэш создан без клиента Redis
	ErrNilClient = errors.New("availability.cache: redis client is nil")

	// ErrCache возвращается при ошибке обращения к Redis
	ErrCache = errors.New("availability.cache: redis error")

	// ErrStale возвращается, когда дату инвалидировали после чтения поколения; значение не записано
	ErrStale = errors.New("availability.cache: date was invalidated, entry is stale")

	// ErrDecode возвращается, когда значение в кэше не удалось разобрать
	ErrDecode = errors.New("availability.cache: failed to decode entry")
)
