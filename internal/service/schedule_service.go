package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/repository/repoargs"
	"github.com/fsdevblog/tably/pkg/uow"
)

const (
	minutesPerHour = 60
	// MaxBookingDays — горизонт бронирования: получить заказ можно не позднее чем через 3 дня.
	MaxBookingDays = 3
)

// ValidateAgainstSchedule проверяет, попадает ли candidate в расписание ресторана.
// Сравнение ведется в минутах дня против целочасового окна [start, end], границы включительно.
// Возвращает nil либо *domain.ScheduleViolationError с дословной причиной.
func ValidateAgainstSchedule(schedule domain.WeeklySchedule, candidate time.Time) error {
	day := schedule.Day(candidate.Weekday())
	if !day.Open {
		return &domain.ScheduleViolationError{
			Reason: fmt.Sprintf("closed on %s", candidate.Weekday()),
		}
	}
	minutes := candidate.Hour()*minutesPerHour + candidate.Minute()
	if minutes < day.StartHour*minutesPerHour || minutes > day.EndHour*minutesPerHour {
		return &domain.ScheduleViolationError{
			Reason: fmt.Sprintf("outside hours, open %d-%d", day.StartHour, day.EndHour),
		}
	}
	return nil
}

// MinimumBookableDate возвращает ближайшую дату, на которую можно бронировать получение.
// Сегодня подходит, если ресторан еще открыт либо откроется позже сегодня: клиент может
// оформить заказ до открытия, но не задним числом после закрытия. Иначе перебираем дни
// вперед до первого открытого. Расписание, закрытое всю неделю, дает ErrNoBookableDate.
func MinimumBookableDate(schedule domain.WeeklySchedule, now time.Time) (time.Time, error) {
	today := schedule.Day(now.Weekday())
	minutes := now.Hour()*minutesPerHour + now.Minute()
	if today.Open && minutes <= today.EndHour*minutesPerHour {
		return truncateToDate(now), nil
	}
	for offset := 1; offset < len(schedule); offset++ {
		candidate := now.AddDate(0, 0, offset)
		if schedule.Day(candidate.Weekday()).Open {
			return truncateToDate(candidate), nil
		}
	}
	return time.Time{}, domain.ErrNoBookableDate
}

// MaximumBookableDate возвращает последнюю дату горизонта бронирования.
func MaximumBookableDate(now time.Time) time.Time {
	return truncateToDate(now.AddDate(0, 0, MaxBookingDays))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type ScheduleService struct {
	restaurantRepo RestaurantRepository
	clock          Clock
}

func NewScheduleService(u uow.UOW, clock Clock) (*ScheduleService, error) {
	restaurantRepo, err := uow.GetRepositoryAs[RestaurantRepository](u, uow.RepositoryName(repoargs.RestaurantRepoName))
	if err != nil {
		return nil, err
	}
	return &ScheduleService{
		restaurantRepo: restaurantRepo,
		clock:          clock,
	}, nil
}

type CollectionTimeCheck struct {
	OK      bool
	Reason  string
	MinDate time.Time
	MaxDate time.Time
}

// ValidateCollectionTime проверяет желаемое время получения против расписания ресторана
// и горизонта бронирования. Границы окна возвращаются всегда, в том числе при отказе,
// чтобы клиент мог предложить корректную дату.
func (s *ScheduleService) ValidateCollectionTime(
	ctx context.Context,
	restaurantID int64,
	candidate time.Time,
) (*CollectionTimeCheck, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("validating collection time: %w", err)
	}

	now := s.clock.Now()
	check := &CollectionTimeCheck{
		MaxDate: MaximumBookableDate(now),
	}
	minDate, minDateErr := MinimumBookableDate(restaurant.Schedule, now)
	if minDateErr == nil {
		check.MinDate = minDate
	}

	if candidate.Before(now) {
		check.Reason = "collection time is in the past"
		return check, nil
	}
	if truncateToDate(candidate).After(check.MaxDate) {
		check.Reason = fmt.Sprintf("collection time is beyond the %d day booking window", MaxBookingDays)
		return check, nil
	}
	if vErr := ValidateAgainstSchedule(restaurant.Schedule, candidate); vErr != nil {
		var sErr *domain.ScheduleViolationError
		if errors.As(vErr, &sErr) {
			check.Reason = sErr.Reason
			return check, nil
		}
		return nil, vErr
	}

	check.OK = true
	return check, nil
}
