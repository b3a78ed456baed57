package resources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	resourceRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/resource"
	"github.com/m04kA/SMC-StudioBooking/internal/service/resources/models"
	"github.com/m04kA/SMC-StudioBooking/pkg/logger"
	"github.com/m04kA/SMC-StudioBooking/pkg/ptr"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Resource)
	return r, args.Error(1)
}

func (m *mockRepo) LockByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) ReplaceWindows(ctx context.Context, id int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	args := m.Called(ctx, id, windows)
	w, _ := args.Get(0).([]domain.AvailabilityWindow)
	return w, args.Error(1)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	repo := &mockRepo{}
	repo.On("GetByID", ctx, int64(1)).Return(&domain.Resource{
		ID:       1,
		Name:     "Studio A",
		IsActive: true,
		Capacity: ptr.Ptr(4),
		Windows: []domain.AvailabilityWindow{
			{ID: 10, DayOfWeek: time.Monday, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("24:00"), IsActive: true},
		},
	}, nil)
	repo.On("GetByID", ctx, int64(2)).Return(nil, resourceRepo.ErrResourceNotFound)

	svc := NewService(repo, inlineTx{}, logger.Nop())

	resp, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Studio A", resp.Name)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, models.WindowResponse{ID: 10, DayOfWeek: 1, StartTime: "09:00", EndTime: "24:00", IsActive: true}, resp.Windows[0])

	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestService_ReplaceWindows(t *testing.T) {
	ctx := context.Background()

	t.Run("admin replaces schedule", func(t *testing.T) {
		repo := &mockRepo{}
		expected := []domain.AvailabilityWindow{
			{DayOfWeek: time.Tuesday, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("13:00"), IsActive: true},
			{DayOfWeek: time.Tuesday, StartTime: types.MustTimeString("14:00"), EndTime: types.MustTimeString("18:00"), IsActive: false},
		}
		stored := []domain.AvailabilityWindow{expected[0], expected[1]}
		stored[0].ID, stored[1].ID = 1, 2

		repo.On("LockByID", ctx, int64(1)).Return(nil).Once()
		repo.On("ReplaceWindows", ctx, int64(1), expected).Return(stored, nil).Once()

		resp, err := NewService(repo, inlineTx{}, logger.Nop()).ReplaceWindows(ctx, 1, &models.ReplaceScheduleRequest{
			UserID:  1,
			IsAdmin: true,
			Windows: []models.WindowInput{
				{DayOfWeek: 2, StartTime: "09:00", EndTime: "13:00"},
				{DayOfWeek: 2, StartTime: "14:00", EndTime: "18:00", IsActive: ptr.Ptr(false)},
			},
		})
		require.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, int64(2), resp[1].ID)
		repo.AssertExpectations(t)
	})

	t.Run("non admin", func(t *testing.T) {
		_, err := NewService(&mockRepo{}, inlineTx{}, logger.Nop()).ReplaceWindows(ctx, 1, &models.ReplaceScheduleRequest{UserID: 5})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	invalid := []struct {
		name   string
		window models.WindowInput
	}{
		{name: "day out of range", window: models.WindowInput{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}},
		{name: "bad format", window: models.WindowInput{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"}},
		{name: "start after end", window: models.WindowInput{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00"}},
		{name: "empty window", window: models.WindowInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			_, err := NewService(repo, inlineTx{}, logger.Nop()).ReplaceWindows(ctx, 1, &models.ReplaceScheduleRequest{
				IsAdmin: true,
				Windows: []models.WindowInput{tc.window},
			})
			assert.ErrorIs(t, err, ErrInvalidWindow)
			repo.AssertNotCalled(t, "LockByID", mock.Anything, mock.Anything)
		})
	}

	t.Run("resource missing", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("LockByID", ctx, int64(9)).Return(resourceRepo.ErrResourceNotFound)

		_, err := NewService(repo, inlineTx{}, logger.Nop()).ReplaceWindows(ctx, 9, &models.ReplaceScheduleRequest{IsAdmin: true})
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("LockByID", ctx, int64(1)).Return(nil)
		repo.On("ReplaceWindows", ctx, int64(1), []domain.AvailabilityWindow{}).Return(nil, errors.New("disk full"))

		_, err := NewService(repo, inlineTx{}, logger.Nop()).ReplaceWindows(ctx, 1, &models.ReplaceScheduleRequest{IsAdmin: true})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
