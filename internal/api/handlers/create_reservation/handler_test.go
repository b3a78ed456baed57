package create_reservation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/availability"
	createReservation "github.com/m04kA/SMC-StudioBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createReservation.Response)
	return resp, args.Error(1)
}

const validBody = `{"resourceId":1,"startTime":"2026-03-02T10:00:00Z","endTime":"2026-03-02T11:00:00Z"}`

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	r.Header.Set(middleware.HeaderUserID, "42")
	w := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(w, r)
	return w
}

func TestHandler_Handle_Created(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &createReservation.Request{
		ResourceID:    1,
		UserID:        42,
		StartTime:     start,
		EndTime:       end,
		AttendeeCount: 1,
	}).Return(&createReservation.Response{
		ID:            10,
		ResourceID:    1,
		UserID:        42,
		StartTime:     start,
		EndTime:       end,
		Status:        "confirmed",
		AttendeeCount: 1,
		CreatedAt:     start,
		UpdatedAt:     start,
	}, nil)

	w := serve(NewHandler(uc, logger.Nop()), validBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"id": 10,
		"resourceId": 1,
		"userId": 42,
		"startTime": "2026-03-02T10:00:00Z",
		"endTime": "2026-03-02T11:00:00Z",
		"status": "confirmed",
		"attendeeCount": 1,
		"createdAt": "2026-03-02T10:00:00Z",
		"updatedAt": "2026-03-02T10:00:00Z"
	}`, w.Body.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	conflictStart := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)
	conflict := availability.NewUnavailableError(domain.Conflicting(&domain.Reservation{
		ID:        77,
		StartTime: conflictStart,
		EndTime:   conflictStart.Add(time.Hour),
	}))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantHeader string
	}{
		{name: "conflict", err: conflict, wantStatus: http.StatusConflict},
		{name: "resource not found", err: availability.NewUnavailableError(domain.Unavailable(domain.ReasonResourceNotFound, "missing")), wantStatus: http.StatusNotFound},
		{name: "closed day", err: availability.NewUnavailableError(domain.Unavailable(domain.ReasonScheduleUnavailable, "closed")), wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid interval", err: availability.NewUnavailableError(domain.Unavailable(domain.ReasonInvalidInterval, "bad")), wantStatus: http.StatusBadRequest},
		{name: "rate limited", err: &createReservation.RateLimitedError{RetryAfter: 30 * time.Second}, wantStatus: http.StatusTooManyRequests, wantHeader: "30"},
		{name: "concurrent update", err: fmt.Errorf("%w: serialization failure", createReservation.ErrConcurrentUpdate), wantStatus: http.StatusServiceUnavailable, wantHeader: "1"},
		{name: "invalid input", err: fmt.Errorf("%w: notes too long", createReservation.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "internal", err: createReservation.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(NewHandler(uc, logger.Nop()), validBody)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantHeader, w.Header().Get("Retry-After"))
		})
	}

	t.Run("conflict body cites reservation", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, conflict)

		w := serve(NewHandler(uc, logger.Nop()), validBody)
		assert.Contains(t, w.Body.String(), `"reservationId":77`)
		assert.Contains(t, w.Body.String(), `"reason":"reservation_conflict"`)
	})
}

func TestHandler_Handle_BadRequests(t *testing.T) {
	h := NewHandler(&mockUseCase{}, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, serve(h, `{`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"resourceId":0,"startTime":"x","endTime":"y"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"resourceId":1,"startTime":"10:00","endTime":"11:00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"resourceId":1,"startTime":"2026-03-02T10:00:00Z","endTime":"2026-03-02T11:00:00Z","attendeeCount":0}`).Code)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(validBody))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
