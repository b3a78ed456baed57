package get_available_slots

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	"github.com/m04kA/SMC-StudioBooking/internal/service/availability"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
)

type mockEnumerator struct{ mock.Mock }

func (m *mockEnumerator) EnumerateSlots(ctx context.Context, resourceID int64, date time.Time, duration int) (iter.Seq[domain.TimeSlot], error) {
	args := m.Called(ctx, resourceID, date, duration)
	seq, _ := args.Get(0).(iter.Seq[domain.TimeSlot])
	return seq, args.Error(1)
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	base := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	slots := []domain.TimeSlot{
		{StartTime: base, EndTime: base.Add(30 * time.Minute), Available: true},
		{StartTime: base.Add(30 * time.Minute), EndTime: base.Add(time.Hour), Available: false},
	}

	t.Run("default duration applied", func(t *testing.T) {
		enumerator := &mockEnumerator{}
		enumerator.On("EnumerateSlots", ctx, int64(7), date, 30).Return(slices.Values(slots), nil)

		resp, err := NewUseCase(enumerator, 30, logger.Nop()).Execute(ctx, &Request{ResourceID: 7, Date: date})
		require.NoError(t, err)

		assert.Equal(t, 30, resp.DurationMinutes)
		assert.Equal(t, slots, resp.Slots)
		assert.Equal(t, 1, resp.AvailableCount())
		enumerator.AssertExpectations(t)
	})

	t.Run("closed day returns empty list", func(t *testing.T) {
		enumerator := &mockEnumerator{}
		enumerator.On("EnumerateSlots", ctx, int64(7), date, 60).
			Return(iter.Seq[domain.TimeSlot](func(func(domain.TimeSlot) bool) {}), nil)

		resp, err := NewUseCase(enumerator, 30, logger.Nop()).Execute(ctx, &Request{ResourceID: 7, Date: date, DurationMinutes: 60})
		require.NoError(t, err)

		assert.NotNil(t, resp.Slots)
		assert.Empty(t, resp.Slots)
	})

	errorCases := []struct {
		name     string
		resolver error
		want     error
	}{
		{name: "not found", resolver: availability.ErrResourceNotFound, want: ErrResourceNotFound},
		{name: "inactive", resolver: availability.ErrResourceInactive, want: ErrResourceInactive},
		{name: "bad duration", resolver: fmt.Errorf("%w: 3 minutes", availability.ErrInvalidSlotDuration), want: ErrInvalidSlotDuration},
		{name: "storage", resolver: fmt.Errorf("%w: timeout", availability.ErrInternal), want: ErrInternal},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			enumerator := &mockEnumerator{}
			enumerator.On("EnumerateSlots", ctx, int64(7), date, 30).Return(nil, tc.resolver)

			_, err := NewUseCase(enumerator, 30, logger.Nop()).Execute(ctx, &Request{ResourceID: 7, Date: date})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("missing date", func(t *testing.T) {
		_, err := NewUseCase(&mockEnumerator{}, 30, logger.Nop()).Execute(ctx, &Request{ResourceID: 7})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
