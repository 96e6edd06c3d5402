package service

import (
	"context"
	"testing"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/repository/repoargs"
	"github.com/fsdevblog/tably/internal/service/mocks"
	"github.com/fsdevblog/tably/pkg/uow"
	uowmocks "github.com/fsdevblog/tably/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

// fixedClock — детерминированные часы для тестов, общие для всего пакета.
type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// weekdaySchedule — ресторан открыт по будням с 9 до 17 включительно.
func weekdaySchedule() domain.WeeklySchedule {
	var schedule domain.WeeklySchedule
	for d := time.Monday; d <= time.Friday; d++ {
		schedule[int(d)] = domain.DaySchedule{Open: true, StartHour: 9, EndHour: 17}
	}
	return schedule
}

type ScheduleServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUOW      *uowmocks.MockUOW
	mockRestRepo *mocks.MockRestaurantRepository
	service      *ScheduleService
	// среда 2026-03-04, полдень
	now time.Time
}

func TestScheduleServiceSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}

func (s *ScheduleServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockRestRepo = mocks.NewMockRestaurantRepository(s.mockCtrl)
	s.now = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.RestaurantRepoName)).
		Return(s.mockRestRepo, nil).AnyTimes()

	var err error
	s.service, err = NewScheduleService(s.mockUOW, fixedClock{now: s.now})
	s.Require().NoError(err)
}

func (s *ScheduleServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ScheduleServiceTestSuite) TestValidateAgainstSchedule() {
	schedule := weekdaySchedule()

	cases := []struct {
		name       string
		candidate  time.Time
		wantReason string
	}{
		{
			name:      "inside window",
			candidate: time.Date(2026, 3, 4, 12, 30, 0, 0, time.UTC),
		}, {
			name:      "at opening hour",
			candidate: time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
		}, {
			// граница окна включительная
			name:      "at closing hour",
			candidate: time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC),
		}, {
			name:       "minute past closing",
			candidate:  time.Date(2026, 3, 4, 17, 1, 0, 0, time.UTC),
			wantReason: "outside hours, open 9-17",
		}, {
			name:       "minute before opening",
			candidate:  time.Date(2026, 3, 4, 8, 59, 0, 0, time.UTC),
			wantReason: "outside hours, open 9-17",
		}, {
			name:       "closed day",
			candidate:  time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC),
			wantReason: "closed on Sunday",
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			err := ValidateAgainstSchedule(schedule, t.candidate)
			if t.wantReason == "" {
				s.Require().NoError(err)
				return
			}
			var vErr *domain.ScheduleViolationError
			s.Require().ErrorAs(err, &vErr)
			s.Equal(t.wantReason, vErr.Reason)
		})
	}
}

func (s *ScheduleServiceTestSuite) TestMinimumBookableDate() {
	schedule := weekdaySchedule()

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			// ресторан еще открыт — сегодня пригодно
			name: "today before closing",
			now:  time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		}, {
			// после закрытия сегодня уже не бронируется
			name: "today after closing",
			now:  time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		}, {
			// суббота и воскресенье закрыты, перебор доходит до понедельника
			name: "weekend rolls to monday",
			now:  time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			got, err := MinimumBookableDate(schedule, t.now)
			s.Require().NoError(err)
			s.Equal(t.want, got)
		})
	}

	s.Run("closed all week", func() {
		var closed domain.WeeklySchedule
		_, err := MinimumBookableDate(closed, s.now)
		s.Require().ErrorIs(err, domain.ErrNoBookableDate)
	})
}

func (s *ScheduleServiceTestSuite) TestMaximumBookableDate() {
	got := MaximumBookableDate(s.now)
	s.Equal(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), got)
}

func (s *ScheduleServiceTestSuite) TestValidateCollectionTime() {
	restaurant := &domain.Restaurant{
		ID:       7,
		Name:     "Bistro",
		Schedule: weekdaySchedule(),
	}
	s.mockRestRepo.EXPECT().
		GetByID(gomock.Any(), restaurant.ID).
		Return(restaurant, nil).AnyTimes()

	cases := []struct {
		name       string
		candidate  time.Time
		wantOK     bool
		wantReason string
	}{
		{
			name:      "valid slot tomorrow",
			candidate: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
			wantOK:    true,
		}, {
			name:       "in the past",
			candidate:  s.now.Add(-time.Hour),
			wantReason: "collection time is in the past",
		}, {
			name:       "beyond booking window",
			candidate:  time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
			wantReason: "collection time is beyond the 3 day booking window",
		}, {
			name:       "closed day inside window",
			candidate:  time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC),
			wantReason: "closed on Saturday",
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			check, err := s.service.ValidateCollectionTime(context.Background(), restaurant.ID, t.candidate)
			s.Require().NoError(err)
			s.Equal(t.wantOK, check.OK)
			s.Equal(t.wantReason, check.Reason)
			// границы окна сообщаются и при отказе
			s.Equal(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), check.MinDate)
			s.Equal(time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), check.MaxDate)
		})
	}
}

func (s *ScheduleServiceTestSuite) TestValidateCollectionTime_UnknownRestaurant() {
	s.mockRestRepo.EXPECT().
		GetByID(gomock.Any(), int64(404)).
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.service.ValidateCollectionTime(context.Background(), 404, s.now.Add(time.Hour))
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}
