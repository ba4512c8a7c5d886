package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/types"
)

const minimal = `
[database]
host = "localhost"
dbname = "reservations"

[catalog_service]
url = "http://catalog:8080"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimal)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, domain.SlotStepMinutes, cfg.Scheduling.SlotStepMinutes)
	assert.Equal(t, domain.LeadTimeMinutes, cfg.Scheduling.LeadTimeMinutes)

	week, err := cfg.DefaultWeek()
	require.NoError(t, err)
	assert.Len(t, week, 7)
	assert.True(t, week.Day(domain.Sunday).IsClosed)
	assert.Equal(t, types.TimeString("09:00"), week.Day(domain.Monday).OpenTime)
	assert.Equal(t, types.TimeString("19:30"), week.Day(domain.Monday).CloseTime)
}

func TestParse_DefaultWeek(t *testing.T) {
	cfg, err := Parse(minimal + `
[scheduling]
timezone = "UTC"

[scheduling.default_week]
mon = { open = "8:00", close = "17:00" }
sunday = { closed = true }
`)
	require.NoError(t, err)

	week, err := cfg.DefaultWeek()
	require.NoError(t, err)
	assert.Equal(t, domain.DayTemplate{OpenTime: "08:00", CloseTime: "17:00"}, week.Day(domain.Monday))
	assert.True(t, week.Day(domain.Tuesday).IsClosed, "missing day is closed")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing database host", `
[database]
dbname = "x"
[catalog_service]
url = "http://catalog"
`},
		{"unknown timezone", minimal + `
[scheduling]
timezone = "Mars/Olympus"
`},
		{"step does not divide a day", minimal + `
[scheduling]
slot_step_minutes = 7
`},
		{"close before open", minimal + `
[scheduling.default_week]
friday = { open = "18:00", close = "09:00" }
`},
		{"unknown weekday", minimal + `
[scheduling.default_week]
funday = { open = "09:00", close = "18:00" }
`},
		{"redis without address", minimal + `
[redis]
enabled = true
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("RESERVATION_DB_PASSWORD", "s3cret")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimal+`
[admin]
api_key = "${RESERVATION_DB_PASSWORD}"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Admin.APIKey)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "r", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=r sslmode=disable", d.DSN())
}
