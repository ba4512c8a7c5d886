package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
)

const (
	keyPrefix           = "availability:"
	generationKeyPrefix = "availability-gen:"

	// generationTTL переживает любую запись доступности, чтобы поколение не обнулилось под живым расчётом
	generationTTL = 24 * time.Hour
)

// Cache кэш доступности в Redis: один hash на дату, поле = ID услуги.
// Любое изменение бронирований даты удаляет весь hash.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient создает клиент Redis
func NewRedisClient(addr, password string, db, poolSize int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: poolSize,
	})
}

// NewCache создает кэш доступности
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key ключ hash для даты
func Key(date time.Time) string {
	return keyPrefix + date.Format(domain.DateFormat)
}

// GenerationKey ключ счётчика поколений даты
func GenerationKey(date time.Time) string {
	return generationKeyPrefix + date.Format(domain.DateFormat)
}

// Get возвращает закэшированную доступность; (nil, false, nil) при промахе
func (c *Cache) Get(ctx context.Context, date time.Time, serviceID int64) (*Entry, bool, error) {
	if c.client == nil {
		return nil, false, ErrNilClient
	}

	raw, err := c.client.HGet(ctx, Key(date), strconv.FormatInt(serviceID, 10)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get - hget: %w", ErrCache, err)
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("%w: Get - unmarshal: %w", ErrDecode, err)
	}

	return &entry, true, nil
}

// Generation текущее поколение даты; 0, если дату ещё не инвалидировали.
// Читается до расчёта доступности и передаётся в Set.
func (c *Cache) Generation(ctx context.Context, date time.Time) (int64, error) {
	if c.client == nil {
		return 0, ErrNilClient
	}

	gen, err := c.client.Get(ctx, GenerationKey(date)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Generation - get: %w", ErrCache, err)
	}

	return gen, nil
}

// Set сохраняет доступность, рассчитанную в поколении gen; TTL продлевается для всего hash даты.
// Если дату инвалидировали после чтения поколения, возвращает ErrStale и ничего не пишет.
func (c *Cache) Set(ctx context.Context, date time.Time, serviceID int64, gen int64, entry *Entry) error {
	if c.client == nil {
		return ErrNilClient
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %w", ErrDecode, err)
	}

	key, genKey := Key(date), GenerationKey(date)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: Set - get generation: %w", ErrCache, err)
		}
		if current != gen {
			return ErrStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, strconv.FormatInt(serviceID, 10), data)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr), errors.Is(err, ErrStale):
		// Поколение сменилось между чтением и записью
		return ErrStale
	case errors.Is(err, ErrCache):
		return err
	default:
		return fmt.Errorf("%w: Set - exec: %w", ErrCache, err)
	}
}

// Invalidate удаляет доступность для перечисленных дат и сдвигает их поколение,
// чтобы расчёты, начатые до изменения, не попали в кэш
func (c *Cache) Invalidate(ctx context.Context, dates ...time.Time) error {
	if c.client == nil {
		return ErrNilClient
	}
	if len(dates) == 0 {
		return nil
	}

	pipe := c.client.TxPipeline()
	for _, d := range dates {
		genKey := GenerationKey(d)
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, Key(d))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: Invalidate - exec: %w", ErrCache, err)
	}

	return nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
