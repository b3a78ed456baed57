// Package availability определяет, можно ли забронировать ресурс на интервал,
// и перечисляет слоты календарного дня.
package availability

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/m04kA/SMC-StudioBooking/internal/domain"
	resourceRepo "github.com/m04kA/SMC-StudioBooking/internal/infra/storage/resource"
	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

// Resolver вычисляет решения о доступности
// Расписание ресурсов задано в одном гражданском часовом поясе loc
type Resolver struct {
	resources    ResourceRepository
	reservations ReservationRepository
	loc          *time.Location
	metrics      MetricsRecorder
	logger       Logger
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(
	resources ResourceRepository,
	reservations ReservationRepository,
	loc *time.Location,
	metrics MetricsRecorder,
	logger Logger,
) *Resolver {
	return &Resolver{
		resources:    resources,
		reservations: reservations,
		loc:          loc,
		metrics:      metrics,
		logger:       logger,
	}
}

// Location возвращает часовой пояс расписания
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Check проверяет, можно ли забронировать ресурс на [start, end)
// Бизнес-отказы возвращаются как решение, ошибка - только при сбое хранилища.
// Внутри транзакции пересекающиеся бронирования читаются с блокировкой
func (r *Resolver) Check(ctx context.Context, resourceID int64, start, end time.Time) (domain.AvailabilityDecision, error) {
	decision, _, err := r.check(ctx, resourceID, start, end)
	if err != nil {
		return domain.AvailabilityDecision{}, err
	}

	r.metrics.RecordDecision(string(decision.Reason))
	return decision, nil
}

// CheckResource то же, что Check, но дополнительно возвращает загруженный ресурс
// (nil, если ресурс не найден)
func (r *Resolver) CheckResource(ctx context.Context, resourceID int64, start, end time.Time) (domain.AvailabilityDecision, *domain.Resource, error) {
	decision, resource, err := r.check(ctx, resourceID, start, end)
	if err != nil {
		return domain.AvailabilityDecision{}, nil, err
	}

	r.metrics.RecordDecision(string(decision.Reason))
	return decision, resource, nil
}

func (r *Resolver) check(ctx context.Context, resourceID int64, start, end time.Time) (domain.AvailabilityDecision, *domain.Resource, error) {
	// 0. Интервал должен быть непустым
	if !end.After(start) {
		return domain.Unavailable(domain.ReasonInvalidInterval, "end time must be after start time"), nil, nil
	}

	// 1. Ресурс
	resource, err := r.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return domain.Unavailable(domain.ReasonResourceNotFound,
				fmt.Sprintf("resource %d not found", resourceID)), nil, nil
		}
		r.logger.Error("Check: failed to get resource id=%d: %v", resourceID, err)
		return domain.AvailabilityDecision{}, nil, fmt.Errorf("%w: failed to get resource: %w", ErrInternal, err)
	}
	if !resource.IsActive {
		return domain.Unavailable(domain.ReasonResourceInactive,
			fmt.Sprintf("resource %d is inactive", resourceID)), resource, nil
	}

	// 2. День недели по гражданской дате начала
	localStart := start.In(r.loc)
	weekday := localStart.Weekday()

	// 3. Активные окна этого дня
	windows := resource.ActiveWindowsFor(weekday)
	if len(windows) == 0 {
		return domain.Unavailable(domain.ReasonScheduleUnavailable,
			fmt.Sprintf("resource closed on %s", weekday)), resource, nil
	}

	// 4. Интервал целиком внутри одного окна
	startTS, endTS, sameDay := r.localSpan(start, end)
	if !sameDay || findContaining(windows, startTS, endTS) == nil {
		return domain.OutsideOperatingHours(nearestWindow(windows, startTS, endTS)), resource, nil
	}

	// 5. Пересечения с активными бронированиями
	conflicts, err := r.reservations.FindOverlapping(ctx, resourceID, start, end)
	if err != nil {
		r.logger.Error("Check: failed to find overlapping reservations for resource id=%d: %v", resourceID, err)
		return domain.AvailabilityDecision{}, nil, fmt.Errorf("%w: failed to find overlapping reservations: %w", ErrInternal, err)
	}
	// Хранилище уже отбирает активные брони, фильтр нужен для реализаций без SQL
	for _, c := range conflicts {
		if c.IsActive() {
			return domain.Conflicting(c), resource, nil
		}
	}

	// 6. Доступно
	return domain.Available(), resource, nil
}

// EnumerateSlots возвращает ленивую перезапускаемую последовательность слотов на дату.
// Используются только год, месяц и день date. Данные загружаются сразу, без блокировок;
// результат носит рекомендательный характер, при бронировании проверка повторяется
func (r *Resolver) EnumerateSlots(ctx context.Context, resourceID int64, date time.Time, slotDurationMinutes int) (iter.Seq[domain.TimeSlot], error) {
	if slotDurationMinutes < domain.MinSlotDurationMinutes || slotDurationMinutes > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: %d minutes, allowed %d..%d", ErrInvalidSlotDuration,
			slotDurationMinutes, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	resource, err := r.resources.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		r.logger.Error("EnumerateSlots: failed to get resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %w", ErrInternal, err)
	}
	if !resource.IsActive {
		return nil, ErrResourceInactive
	}

	// День недели по гражданской дате, без привязки к полуночи пояса:
	// в день перехода на летнее время полночь может не существовать
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	windows := resource.ActiveWindowsFor(day.Weekday())
	if len(windows) == 0 {
		return func(func(domain.TimeSlot) bool) {}, nil
	}

	// Бронирования за весь диапазон окон дня одним запросом
	rangeStart := windows[0].StartTime.On(day, r.loc)
	rangeEnd := windows[0].EndTime.On(day, r.loc)
	for _, w := range windows[1:] {
		if end := w.EndTime.On(day, r.loc); end.After(rangeEnd) {
			rangeEnd = end
		}
	}

	reservations, err := r.reservations.FindOverlapping(ctx, resourceID, rangeStart, rangeEnd)
	if err != nil {
		r.logger.Error("EnumerateSlots: failed to get reservations for resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
	}

	return func(yield func(domain.TimeSlot) bool) {
		for _, w := range windows {
			for slotStart := w.StartTime; ; {
				slotEnd, err := slotStart.AddMinutes(slotDurationMinutes)
				// Слот, выходящий за конец окна, отбрасывается
				if err != nil || slotEnd.IsAfter(w.EndTime) {
					break
				}

				if slot, ok := r.slotOn(day, slotStart, slotEnd, reservations); ok {
					if !yield(slot) {
						return
					}
				}

				slotStart = slotEnd
			}
		}
	}, nil
}

// slotOn строит слот на гражданскую дату day.
// Слоты с временем, пропущенным переводом часов, не строятся
func (r *Resolver) slotOn(day time.Time, start, end types.TimeString, reservations []*domain.Reservation) (domain.TimeSlot, bool) {
	if !start.ExistsOn(day, r.loc) || !end.ExistsOn(day, r.loc) {
		return domain.TimeSlot{}, false
	}

	interval := domain.Interval{
		Start: start.On(day, r.loc),
		End:   end.On(day, r.loc),
	}
	if !interval.End.After(interval.Start) {
		return domain.TimeSlot{}, false
	}

	return domain.TimeSlot{
		StartTime: interval.Start,
		EndTime:   interval.End,
		Available: !overlapsAny(interval, reservations),
	}, true
}

// localSpan переводит интервал во время суток часового пояса расписания.
// Конец ровно в полночь следующего дня считается 24:00.
// Конец округляется вверх до минуты, начало - вниз.
func (r *Resolver) localSpan(start, end time.Time) (types.TimeString, types.TimeString, bool) {
	localStart := start.In(r.loc)
	localEnd := end.In(r.loc)

	startTS := types.NewTimeString(localStart)

	endOfDay := types.MustTimeString("24:00")
	nextMidnight := endOfDay.On(localStart, r.loc)

	switch {
	case localEnd.Equal(nextMidnight):
		return startTS, endOfDay, true
	case !localEnd.Before(nextMidnight):
		return startTS, endOfDay, false
	}

	endTS := types.NewTimeString(localEnd)
	if localEnd.Second() > 0 || localEnd.Nanosecond() > 0 {
		if rounded, err := endTS.AddMinutes(1); err == nil {
			endTS = rounded
		}
	}

	return startTS, endTS, true
}

func findContaining(windows []domain.AvailabilityWindow, start, end types.TimeString) *domain.AvailabilityWindow {
	for i := range windows {
		if windows[i].Contains(start, end) {
			return &windows[i]
		}
	}
	return nil
}

// nearestWindow окно с минимальным зазором до интервала, при равенстве - более раннее
func nearestWindow(windows []domain.AvailabilityWindow, start, end types.TimeString) domain.AvailabilityWindow {
	nearest := windows[0]
	bestGap := nearest.GapMinutes(start, end)
	for _, w := range windows[1:] {
		if gap := w.GapMinutes(start, end); gap < bestGap {
			nearest, bestGap = w, gap
		}
	}
	return nearest
}

func overlapsAny(interval domain.Interval, reservations []*domain.Reservation) bool {
	for _, res := range reservations {
		if res.IsActive() && interval.Overlaps(res.Interval()) {
			return true
		}
	}
	return false
}
