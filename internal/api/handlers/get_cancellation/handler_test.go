package get_cancellation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationEngine/internal/domain"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/cancellation"
	"github.com/m04kA/SMC-ReservationEngine/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Resolve(ctx context.Context, token string) (*domain.ReservationSummary, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReservationSummary), args.Error(1)
}

func get(svc *mockService) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.Nop())
	r := httptest.NewRequest(http.MethodGet, "/api/v1/cancellations/tok", nil)
	r = mux.SetURLVars(r, map[string]string{"token": "tok"})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_OK(t *testing.T) {
	svc := &mockService{}
	svc.On("Resolve", mock.Anything, "tok").Return(&domain.ReservationSummary{
		ReservationID: 5,
		ServiceID:     7,
		ServiceName:   "Мойка",
		CustomerName:  "Анна",
		CustomerPhone: "+79991112233",
		Date:          time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "11:00",
		Status:        domain.StatusConfirmed,
	}, nil)

	w := get(svc)
	require.Equal(t, http.StatusOK, w.Code)

	var body SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.ReservationID)
	assert.Equal(t, "Мойка", body.ServiceName)
	assert.Equal(t, "confirmed", body.Status)
	assert.NotContains(t, w.Body.String(), "+7999", "contact details are not exposed")
}

func TestHandle_Errors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Resolve", mock.Anything, "tok").Return(nil, cancellation.ErrNotFound)

		w := get(svc)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Internal", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Resolve", mock.Anything, "tok").Return(nil, errors.New("db down"))

		w := get(svc)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
