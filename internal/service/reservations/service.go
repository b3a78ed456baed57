package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-StudioBooking/internal/service/reservations/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и администратору
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actor.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccess(reservation) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// ListByUser получает бронирования пользователя, опционально фильтруя по статусу
// Чужой список доступен только администратору
func (s *Service) ListByUser(ctx context.Context, req *models.ListUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByUser: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != req.Actor.UserID && !req.Actor.IsAdmin {
		s.logger.Warn("ListByUser: access denied for user=%d to reservations of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var status *domain.ReservationStatus
	if req.Status != nil {
		parsed, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByUser: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		status = &parsed
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Строка бронирования блокируется на время проверки статуса и обновления
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.Actor.UserID)

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !req.Actor.CanAccess(reservation) {
			return ErrAccessDenied
		}
		if !reservation.CanBeCancelled() {
			return ErrCannotCancel
		}

		if err := s.reservationRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
			if errors.Is(err, reservationRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInternal):
			s.logger.Error("Cancel: reservation id=%d: %v", id, err)
		case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrCannotCancel):
			s.logger.Warn("Cancel: reservation id=%d, user=%d: %v", id, req.Actor.UserID, err)
		default:
			s.logger.Error("Cancel: transaction failed for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
		}
		return err
	}

	s.logger.Info("Cancel: reservation id=%d cancelled", id)
	return nil
}
