package get_reservation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ReservationEngine/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationEngine/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationEngine/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

func serve(svc *mockService, id string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.Nop())
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"id": id})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		setup func(*mockService)
		want  int
	}{
		{
			name: "found",
			id:   "5",
			setup: func(s *mockService) {
				s.On("GetByID", mock.Anything, int64(5)).Return(&models.ReservationResponse{ID: 5, Status: "confirmed"}, nil)
			},
			want: http.StatusOK,
		},
		{
			name: "not found",
			id:   "6",
			setup: func(s *mockService) {
				s.On("GetByID", mock.Anything, int64(6)).Return(nil, reservations.ErrReservationNotFound)
			},
			want: http.StatusNotFound,
		},
		{
			name: "internal",
			id:   "7",
			setup: func(s *mockService) {
				s.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.New("db down"))
			},
			want: http.StatusInternalServerError,
		},
		{name: "not a number", id: "abc", setup: func(*mockService) {}, want: http.StatusBadRequest},
		{name: "zero", id: "0", setup: func(*mockService) {}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			tt.setup(svc)

			w := serve(svc, tt.id)
			assert.Equal(t, tt.want, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
