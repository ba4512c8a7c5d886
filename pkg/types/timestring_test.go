package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "canonical", input: "09:00", want: "09:00"},
		{name: "with seconds", input: "19:30:00", want: "19:30"},
		{name: "single digit hour", input: "9:15", want: "09:15"},
		{name: "embedded", input: "opens at 08:45 daily", want: "08:45"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minute out of range", input: "10:75", wantErr: true},
		{name: "three digit hour", input: "123:45", wantErr: true},
		{name: "three digit minute", input: "12:345", wantErr: true},
		{name: "digits glued to prefix", input: "x0123:45", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := TimeString("18:30")

	end, err := start.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("19:30"), end)
	assert.Equal(t, 18*60+30, start.Minutes())
	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))
	assert.False(t, start.IsBefore(start))

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("10:15").Validate())
	assert.Error(t, TimeString("10:15:00").Validate())
	assert.Error(t, TimeString("9:15").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("123:45").Validate())
}

func TestTimeString_MinutesRejectsOverlongHour(t *testing.T) {
	assert.Equal(t, 0, TimeString("123:45").Minutes())
	assert.Equal(t, 23*60+45, TimeString("23:45").Minutes())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("14:00:00")))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_OnDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	got := TimeString("09:45").OnDate(date)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 45, 0, 0, loc), got)
}
