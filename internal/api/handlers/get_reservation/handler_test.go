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

	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/reservations"
	"github.com/m04kA/SMC-StudioBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, actor)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func serve(h *Handler, target, role string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/api/v1/reservations/{reservationId}", middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodGet)

	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Header.Set(middleware.HeaderUserID, "42")
	if role != "" {
		r.Header.Set(middleware.HeaderUserRole, role)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_Handle(t *testing.T) {
	svc := &mockService{}
	svc.On("GetByID", mock.Anything, int64(5), models.Actor{UserID: 42}).
		Return(&models.ReservationResponse{ID: 5, UserID: 42, Status: "confirmed"}, nil)
	svc.On("GetByID", mock.Anything, int64(6), models.Actor{UserID: 42}).Return(nil, reservations.ErrAccessDenied)
	svc.On("GetByID", mock.Anything, int64(7), models.Actor{UserID: 42}).Return(nil, reservations.ErrReservationNotFound)
	svc.On("GetByID", mock.Anything, int64(8), models.Actor{UserID: 42, IsAdmin: true}).Return(nil, errors.New("boom"))

	h := NewHandler(svc, logger.Nop())

	w := serve(h, "/api/v1/reservations/5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)

	assert.Equal(t, http.StatusForbidden, serve(h, "/api/v1/reservations/6", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(h, "/api/v1/reservations/7", "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(h, "/api/v1/reservations/8", "admin").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/reservations/x", "").Code)
}
