package get_resource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/service/resources"
	"github.com/m04kA/SMC-StudioBooking/internal/service/resources/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Get(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.ResourceResponse)
	return resp, args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/resources/{resourceId}", h.Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_Handle(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, int64(1)).Return(&models.ResourceResponse{
		ID:       1,
		Name:     "Studio A",
		IsActive: true,
		Windows: []models.WindowResponse{
			{ID: 3, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsActive: true},
		},
	}, nil)
	svc.On("Get", mock.Anything, int64(2)).Return(nil, resources.ErrResourceNotFound)

	h := NewHandler(svc, logger.Nop())

	w := serve(h, "/api/v1/resources/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 1,
		"name": "Studio A",
		"isActive": true,
		"windows": [{"id": 3, "dayOfWeek": 1, "startTime": "09:00", "endTime": "18:00", "isActive": true}]
	}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(h, "/api/v1/resources/2").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/resources/abc").Code)
}
