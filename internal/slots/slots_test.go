package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

var loc = time.FixedZone("MSK", 3*60*60)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func at(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
}

func openHours(open, close string) domain.OperatingHours {
	return domain.OperatingHours{OpenTime: types.TimeString(open), CloseTime: types.TimeString(close)}
}

func starts(slots []domain.CandidateSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.String()
	}
	return out
}

func TestWeekOfMonth(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{day(2025, time.September, 1), 1},  // месяц начинается с понедельника
		{day(2025, time.September, 7), 1},  // воскресенье той же недели
		{day(2025, time.September, 8), 2},  // следующий понедельник
		{day(2025, time.June, 1), 1},       // месяц начинается с воскресенья
		{day(2025, time.June, 2), 2},       // понедельник сразу открывает вторую неделю
		{day(2025, time.March, 1), 1},      // суббота
		{day(2025, time.March, 3), 2},      // понедельник
		{day(2025, time.March, 31), 6},     // шестая неделя
		{day(2025, time.April, 29), 5},     // вторник пятой недели
		{day(2026, time.October, 19), 4},   // понедельник
	}

	for _, tt := range tests {
		t.Run(tt.date.Format(domain.DateFormat), func(t *testing.T) {
			assert.Equal(t, tt.want, WeekOfMonth(tt.date))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Len(t, DaysInMonth(2024, time.February, loc), 29)
	assert.Len(t, DaysInMonth(2025, time.February, loc), 28)

	days := DaysInMonth(2025, time.April, loc)
	require.Len(t, days, 30)
	assert.Equal(t, day(2025, time.April, 1), days[0])
	assert.Equal(t, day(2025, time.April, 30), days[29])
}

func TestLeadTimeCutoff(t *testing.T) {
	d := day(2025, time.March, 10)
	rules := DefaultRules()

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"exact boundary", at(d, 8, 0), "09:00"},
		{"rounds up", at(d, 8, 1), "09:15"},
		{"just before boundary", at(d, 8, 14), "09:15"},
		{"seconds count", at(d, 8, 0).Add(30 * time.Second), "09:15"},
		{"quarter", at(d, 13, 45), "14:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.FromMinutes(LeadTimeCutoff(tt.now, rules))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	assert.GreaterOrEqual(t, LeadTimeCutoff(at(d, 23, 10), rules), 24*60)
}

func TestSatisfiesLeadTime(t *testing.T) {
	d := day(2025, time.March, 10)
	now := at(d, 12, 5)
	rules := DefaultRules()

	assert.False(t, SatisfiesLeadTime(d, 13*60, now, rules))
	assert.True(t, SatisfiesLeadTime(d, 13*60+15, now, rules))
	assert.True(t, SatisfiesLeadTime(d.AddDate(0, 0, 1), 9*60, now, rules))
}

func TestGenerate_OpenDayWithLeadTime(t *testing.T) {
	d := day(2025, time.March, 10)

	got, err := Generate(d, 60, openHours("09:00", "19:30"), at(d, 8, 0), DefaultRules())
	require.NoError(t, err)

	require.Len(t, got, 39)
	assert.Equal(t, domain.CandidateSlot{Start: "09:00", End: "10:00"}, got[0])
	assert.Equal(t, domain.CandidateSlot{Start: "18:30", End: "19:30"}, got[len(got)-1])

	for _, s := range got {
		assert.Zero(t, (s.Start.Minutes()-9*60)%15, "start %s is off grid", s.Start)
		assert.LessOrEqual(t, s.End.Minutes(), 19*60+30)
		assert.Equal(t, 60, s.DurationMinutes())
	}
}

func TestGenerate_SameDayCutoffDiscardsEarlySlots(t *testing.T) {
	d := day(2025, time.March, 10)

	got, err := Generate(d, 30, openHours("09:00", "12:00"), at(d, 9, 50), DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, []string{"11:00", "11:15", "11:30"}, starts(got))
}

func TestGenerate_OtherDayIgnoresLeadTime(t *testing.T) {
	d := day(2025, time.March, 11)

	got, err := Generate(d, 30, openHours("09:00", "10:00"), at(day(2025, time.March, 10), 23, 30), DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:15", "09:30"}, starts(got))
}

func TestGenerate_DurationLongerThanWindow(t *testing.T) {
	d := day(2025, time.March, 11)

	got, err := Generate(d, 90, openHours("09:00", "10:00"), at(d, 0, 0).AddDate(0, 0, -1), DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerate_ClosedAndMisconfigured(t *testing.T) {
	d := day(2025, time.March, 11)
	now := at(day(2025, time.March, 1), 9, 0)

	closed := domain.Closed(d, domain.ClosedReasonMarkedClosed)
	got, err := Generate(d, 15, closed, now, DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Generate(d, 15, openHours("18:00", "09:00"), now, DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerate_InvalidDuration(t *testing.T) {
	d := day(2025, time.March, 11)

	_, err := Generate(d, 0, openHours("09:00", "10:00"), d, DefaultRules())
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerate_GridAnchoredAtOpen(t *testing.T) {
	d := day(2025, time.March, 11)

	got, err := Generate(d, 20, openHours("09:10", "10:00"), day(2025, time.March, 1), DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, []string{"09:10", "09:25", "09:40"}, starts(got))
}

func TestIsOnGrid(t *testing.T) {
	rules := DefaultRules()

	assert.True(t, IsOnGrid("09:45", "09:00", rules))
	assert.False(t, IsOnGrid("09:50", "09:00", rules))
	assert.False(t, IsOnGrid("08:45", "09:00", rules))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(600, 660, 630, 690))
	assert.False(t, Overlaps(600, 660, 660, 720))
	assert.False(t, Overlaps(660, 720, 600, 660))
	assert.True(t, Overlaps(600, 720, 630, 640))
}

func TestFilterAvailable(t *testing.T) {
	d := day(2025, time.March, 11)

	candidates, err := Generate(d, 60, openHours("09:00", "19:30"), day(2025, time.March, 1), DefaultRules())
	require.NoError(t, err)

	reservations := []*domain.Reservation{
		{StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
		{StartTime: "14:00", EndTime: "15:00", Status: domain.StatusCancelled},
	}

	available := FilterAvailable(candidates, reservations)
	got := starts(available)

	assert.Contains(t, got, "09:00")
	for _, taken := range []string{"09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45"} {
		assert.NotContains(t, got, taken)
	}
	assert.Contains(t, got, "11:00")
	assert.Contains(t, got, "14:00", "cancelled reservations do not occupy time")

	for _, s := range available {
		assert.False(t, HasOverlap(s.Start, s.End, reservations))
	}
}
