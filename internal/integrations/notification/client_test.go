package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/pkg/logger"
)

func summary() domain.ReservationSummary {
	return domain.ReservationSummary{
		ReservationID: 42,
		ServiceID:     7,
		ServiceName:   "Haircut",
		CustomerName:  "Anna",
		CustomerPhone: "+79990000000",
		Date:          time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:     "14:00",
		EndTime:       "15:00",
		Status:        domain.StatusConfirmed,
	}
}

func TestClient_NotifyCreated(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/internal/notifications", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())
	require.NoError(t, client.NotifyCreated(context.Background(), summary(), "plain-token"))

	assert.Equal(t, EventReservationCreated, got.Event)
	assert.Equal(t, int64(42), got.ReservationID)
	assert.Equal(t, "2025-03-11", got.Date)
	assert.Equal(t, "14:00", got.StartTime)
	assert.Equal(t, "plain-token", got.CancelToken)
}

func TestClient_NotifyCancelledOmitsToken(t *testing.T) {
	var raw map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())
	require.NoError(t, client.NotifyCancelled(context.Background(), summary()))

	assert.Equal(t, string(EventReservationCancelled), raw["event"])
	assert.NotContains(t, raw, "cancel_token")
}

func TestClient_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.Nop())
	err := client.NotifyCancelled(context.Background(), summary())
	assert.ErrorIs(t, err, ErrRejected)
}
