package cancel_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/service/reservations"
	"github.com/m04kA/SMC-StudioBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

type mockService struct{ mock.Mock }

func (m *mockService) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func serve(h *Handler, id, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/api/v1/reservations/{reservationId}/cancel", middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodPatch)

	r := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/cancel", strings.NewReader(body))
	r.Header.Set(middleware.HeaderUserID, "42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_Handle(t *testing.T) {
	owner := models.Actor{UserID: 42}

	t.Run("with reason", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Cancel", mock.Anything, int64(5), &models.CancelReservationRequest{
			Actor:              owner,
			CancellationReason: ptr.Ptr("sick"),
		}).Return(nil)

		w := serve(NewHandler(svc, logger.Nop()), "5", `{"cancellationReason":"sick"}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("empty body", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Cancel", mock.Anything, int64(5), &models.CancelReservationRequest{Actor: owner}).Return(nil)

		w := serve(NewHandler(svc, logger.Nop()), "5", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: reservations.ErrReservationNotFound, code: http.StatusNotFound},
		{name: "forbidden", err: reservations.ErrAccessDenied, code: http.StatusForbidden},
		{name: "already cancelled", err: reservations.ErrCannotCancel, code: http.StatusConflict},
		{name: "internal", err: reservations.ErrInternal, code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, int64(5), mock.Anything).Return(tt.err)

			assert.Equal(t, tt.code, serve(NewHandler(svc, logger.Nop()), "5", "").Code)
		})
	}

	t.Run("reason too long", func(t *testing.T) {
		body := `{"cancellationReason":"` + strings.Repeat("a", 501) + `"}`
		assert.Equal(t, http.StatusBadRequest, serve(NewHandler(&mockService{}, logger.Nop()), "5", body).Code)
	})
}
