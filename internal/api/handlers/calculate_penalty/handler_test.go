package calculate_penalty

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	calculatePenalty "github.com/m04kA/SMC-StudioBooking/internal/usecase/calculate_penalty"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *calculatePenalty.Request) (*calculatePenalty.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*calculatePenalty.Response)
	return resp, args.Error(1)
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/penalties/calculate", strings.NewReader(body)))
	return w
}

func TestHandler_Handle(t *testing.T) {
	t.Run("success with plan", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, &calculatePenalty.Request{
			BaseAmount:  10000,
			DueDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			PaymentDate: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
			PlanID:      ptr.Ptr(int64(2)),
		}).Return(&calculatePenalty.Response{
			Result: domain.PenaltyResult{PenaltyAmount: 650, PenaltyRate: 0.065, DaysLate: 3},
			Policy: domain.DefaultPenaltyPolicy(),
		}, nil)

		w := serve(NewHandler(uc, logger.Nop()), `{"baseAmount":10000,"dueDate":"2026-01-01","paymentDate":"2026-01-06","planId":2}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"penaltyAmount": 650,
			"penaltyRate": 0.065,
			"daysLate": 3,
			"withinGracePeriod": false,
			"policy": {"gracePeriodDays": 2, "baseRate": 0.05, "dailyRate": 0.005, "maxRate": 0.5}
		}`, w.Body.String())
	})

	t.Run("plan not found", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, calculatePenalty.ErrPlanNotFound)

		w := serve(NewHandler(uc, logger.Nop()), `{"baseAmount":1,"dueDate":"2026-01-01","paymentDate":"2026-01-06","planId":9}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	badBodies := map[string]string{
		"missing amount":  `{"dueDate":"2026-01-01","paymentDate":"2026-01-06"}`,
		"negative amount": `{"baseAmount":-5,"dueDate":"2026-01-01","paymentDate":"2026-01-06"}`,
		"bad date":        `{"baseAmount":5,"dueDate":"01/01/2026","paymentDate":"2026-01-06"}`,
		"max below base":  `{"baseAmount":5,"dueDate":"2026-01-01","paymentDate":"2026-01-06","policy":{"baseRate":0.2,"maxRate":0.1}}`,
		"unknown field":   `{"baseAmount":5,"dueDate":"2026-01-01","paymentDate":"2026-01-06","currency":"CLP"}`,
	}
	for name, body := range badBodies {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, serve(NewHandler(&mockUseCase{}, logger.Nop()), body).Code)
		})
	}
}
