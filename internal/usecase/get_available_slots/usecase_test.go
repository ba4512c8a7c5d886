package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/infra/cache/availability"
	"github.com/m04kA/SMC-ReservationEngine/internal/integrations/catalog"
	"github.com/m04kA/SMC-ReservationEngine/internal/slots"
	"github.com/m04kA/SMC-ReservationEngine/pkg/logger"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetService(ctx context.Context, id int64) (*catalog.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

type mockHours struct {
	mock.Mock
}

func (m *mockHours) Resolve(ctx context.Context, date time.Time) (domain.OperatingHours, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(domain.OperatingHours), args.Error(1)
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListByDate(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

type cacheCounter struct {
	hits, misses int
}

func (c *cacheCounter) IncCacheLookup(hit bool) {
	if hit {
		c.hits++
		return
	}
	c.misses++
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

var (
	date     = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	dayStart = time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	dayAhead = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
)

func weekdayHours() domain.OperatingHours {
	return domain.OperatingHours{Date: date, OpenTime: "09:00", CloseTime: "19:30"}
}

type fixture struct {
	catalog *mockCatalog
	hours   *mockHours
	repo    *mockRepo
	metrics *cacheCounter
}

func newFixture(duration int) *fixture {
	f := &fixture{catalog: &mockCatalog{}, hours: &mockHours{}, repo: &mockRepo{}, metrics: &cacheCounter{}}
	f.catalog.On("GetService", mock.Anything, int64(7)).Return(&catalog.Service{ID: 7, Name: "Мойка", DurationMinutes: duration}, nil)
	return f
}

func (f *fixture) useCase(now time.Time, cache AvailabilityCache) *UseCase {
	return NewUseCase(f.catalog, f.hours, f.repo, cache, f.metrics, slots.DefaultRules(), fixedTime(now), logger.Nop())
}

func starts(resp *Response) []string {
	out := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		out = append(out, s.Start.String())
	}
	return out
}

func TestExecute_SameDayMorning(t *testing.T) {
	f := newFixture(60)
	f.hours.On("Resolve", mock.Anything, date).Return(weekdayHours(), nil)
	f.repo.On("ListByDate", mock.Anything, domain.ReservationFilter{Date: date}).Return([]*domain.Reservation{}, nil)

	resp, err := f.useCase(dayStart, nil).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 39)
	assert.Equal(t, Slot{Start: "09:00", End: "10:00"}, resp.Slots[0])
	assert.Equal(t, Slot{Start: "18:30", End: "19:30"}, resp.Slots[38])
	assert.False(t, resp.IsClosed)
	require.NotNil(t, resp.OpenTime)
	assert.Equal(t, types.TimeString("09:00"), *resp.OpenTime)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_ExcludesOverlaps(t *testing.T) {
	f := newFixture(60)
	f.hours.On("Resolve", mock.Anything, date).Return(weekdayHours(), nil)
	f.repo.On("ListByDate", mock.Anything, mock.Anything).Return([]*domain.Reservation{
		{ID: 1, Date: date, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
		{ID: 2, Date: date, StartTime: "15:00", EndTime: "16:00", Status: domain.StatusCancelled},
	}, nil)

	resp, err := f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)

	got := starts(resp)
	assert.Contains(t, got, "09:00")
	for _, blocked := range []string{"09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45"} {
		assert.NotContains(t, got, blocked)
	}
	assert.Contains(t, got, "11:00")
	assert.Contains(t, got, "15:00", "cancelled reservations do not occupy time")
	assert.Len(t, got, 32)
}

func TestExecute_ServiceLongerThanWindow(t *testing.T) {
	f := newFixture(90)
	f.hours.On("Resolve", mock.Anything, date).Return(domain.OperatingHours{Date: date, OpenTime: "09:00", CloseTime: "10:00"}, nil)

	resp, err := f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	f.repo.AssertNotCalled(t, "ListByDate", mock.Anything, mock.Anything)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture(30)
	f.hours.On("Resolve", mock.Anything, date).Return(domain.Closed(date, domain.ClosedReasonMarkedClosed), nil)

	resp, err := f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)
	assert.True(t, resp.IsClosed)
	assert.Equal(t, domain.ClosedReasonMarkedClosed, resp.ClosedReason)
	assert.Nil(t, resp.OpenTime)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(30)

	resp, err := f.useCase(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC), nil).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)
	assert.True(t, resp.IsClosed)
	assert.Equal(t, reasonPastDate, resp.ClosedReason)
	f.hours.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("InvalidInput", func(t *testing.T) {
		f := newFixture(30)
		_, err := f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 0, Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 7})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ServiceNotFound", func(t *testing.T) {
		f := &fixture{catalog: &mockCatalog{}, hours: &mockHours{}, repo: &mockRepo{}, metrics: &cacheCounter{}}
		f.catalog.On("GetService", mock.Anything, int64(9)).Return(nil, catalog.ErrServiceNotFound)

		_, err := f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 9, Date: date})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("CatalogUnavailable", func(t *testing.T) {
		f := &fixture{catalog: &mockCatalog{}, hours: &mockHours{}, repo: &mockRepo{}, metrics: &cacheCounter{}}
		f.catalog.On("GetService", mock.Anything, int64(7)).Return(nil, catalog.ErrInternal)

		_, err := f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("ResolverFailure", func(t *testing.T) {
		f := newFixture(30)
		f.hours.On("Resolve", mock.Anything, date).Return(domain.OperatingHours{}, errors.New("db down"))

		_, err := f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("RepositoryFailure", func(t *testing.T) {
		f := newFixture(30)
		f.hours.On("Resolve", mock.Anything, date).Return(weekdayHours(), nil)
		f.repo.On("ListByDate", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := f.useCase(dayAhead, nil).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func newRedisCache(t *testing.T) *availability.Cache {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return availability.NewCache(client, time.Minute)
}

func TestExecute_CachesFutureDates(t *testing.T) {
	cache := newRedisCache(t)
	f := newFixture(60)
	f.hours.On("Resolve", mock.Anything, date).Return(weekdayHours(), nil).Once()
	f.repo.On("ListByDate", mock.Anything, mock.Anything).Return([]*domain.Reservation{
		{ID: 1, Date: date, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
	}, nil).Once()

	uc := f.useCase(dayAhead, cache)

	first, err := uc.Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.metrics.hits)
	assert.Equal(t, 1, f.metrics.misses)
	f.hours.AssertNumberOfCalls(t, "Resolve", 1)

	// После инвалидации расчёт выполняется заново
	require.NoError(t, cache.Invalidate(context.Background(), date))
	f.hours.On("Resolve", mock.Anything, date).Return(weekdayHours(), nil).Once()
	f.repo.On("ListByDate", mock.Anything, mock.Anything).Return([]*domain.Reservation{}, nil).Once()

	third, err := uc.Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)
	assert.Len(t, third.Slots, 39)
}

func TestExecute_ChangeDuringCalculationIsNotCached(t *testing.T) {
	cache := newRedisCache(t)
	f := newFixture(60)
	f.hours.On("Resolve", mock.Anything, date).Return(weekdayHours(), nil)

	// Бронирование отменили и дату инвалидировали, пока шёл расчёт по старым данным
	f.repo.On("ListByDate", mock.Anything, mock.Anything).Return([]*domain.Reservation{
		{ID: 1, Date: date, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
	}, nil).Run(func(mock.Arguments) {
		require.NoError(t, cache.Invalidate(context.Background(), date))
	}).Once()

	resp, err := f.useCase(dayAhead, cache).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)
	assert.NotContains(t, starts(resp), "10:00")

	_, ok, err := cache.Get(context.Background(), date, 7)
	require.NoError(t, err)
	assert.False(t, ok, "stale result must not outlive the invalidation")

	// Следующий запрос считает заново и видит освободившийся слот
	f.repo.On("ListByDate", mock.Anything, mock.Anything).Return([]*domain.Reservation{}, nil).Once()

	resp, err = f.useCase(dayAhead, cache).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)
	assert.Contains(t, starts(resp), "10:00")

	_, ok, err = cache.Get(context.Background(), date, 7)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExecute_CacheIgnoresStaleDuration(t *testing.T) {
	cache := newRedisCache(t)
	require.NoError(t, cache.Set(context.Background(), date, 7, 0, &availability.Entry{
		OpenTime: "09:00", CloseTime: "19:30", DurationMinutes: 30,
		Slots: []availability.Slot{{Start: "09:00", End: "09:30"}},
	}))

	f := newFixture(60)
	f.hours.On("Resolve", mock.Anything, date).Return(weekdayHours(), nil)
	f.repo.On("ListByDate", mock.Anything, mock.Anything).Return([]*domain.Reservation{}, nil)

	resp, err := f.useCase(dayAhead, cache).Execute(context.Background(), &Request{ServiceID: 7, Date: date})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 39)
	assert.Equal(t, 1, f.metrics.misses)
}

func TestExecute_SameDayBypassesCache(t *testing.T) {
	cache := newRedisCache(t)
	f := newFixture(60)
	f.hours.On("Resolve", mock.Anything, date).Return(weekdayHours(), nil)
	f.repo.On("ListByDate", mock.Anything, mock.Anything).Return([]*domain.Reservation{}, nil)

	uc := f.useCase(dayStart, cache)
	for i := 0; i < 2; i++ {
		_, err := uc.Execute(context.Background(), &Request{ServiceID: 7, Date: date})
		require.NoError(t, err)
	}

	f.hours.AssertNumberOfCalls(t, "Resolve", 2)
	assert.Zero(t, f.metrics.hits+f.metrics.misses)

	_, ok, err := cache.Get(context.Background(), date, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}
