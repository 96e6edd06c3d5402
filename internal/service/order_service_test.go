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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockTX        *uowmocks.MockTX
	mockRestRepo  *mocks.MockRestaurantRepository
	mockMenuRepo  *mocks.MockMenuItemRepository
	mockOrderRepo *mocks.MockOrderRepository
	mockAcctRepo  *mocks.MockAccountRepository
	mockLoanRepo  *mocks.MockLoanRepository
	service       *OrderService

	now        time.Time
	restaurant *domain.Restaurant
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockRestRepo = mocks.NewMockRestaurantRepository(s.mockCtrl)
	s.mockMenuRepo = mocks.NewMockMenuItemRepository(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockAcctRepo = mocks.NewMockAccountRepository(s.mockCtrl)
	s.mockLoanRepo = mocks.NewMockLoanRepository(s.mockCtrl)

	s.now = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	s.restaurant = &domain.Restaurant{
		ID:       7,
		Name:     "Bistro",
		Schedule: weekdaySchedule(),
		Penalty: domain.PenaltySettings{
			Enabled:            true,
			PenaltyRate:        10,
			TimeThresholdHours: 6,
		},
	}

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.RestaurantRepoName)).
		Return(s.mockRestRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.MenuItemRepoName)).
		Return(s.mockMenuRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()

	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAcctRepo, nil).AnyTimes()
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.LoanRepoName)).
		Return(s.mockLoanRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(context.Background(), s.mockTX)
		},
	).AnyTimes()

	clock := fixedClock{now: s.now}
	pricing, pricingErr := NewPricingService(s.mockUOW, clock)
	s.Require().NoError(pricingErr)

	var err error
	s.service, err = NewOrderService(s.mockUOW, pricing, clock)
	s.Require().NoError(err)
}

func (s *OrderServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// корзина из одной позиции за 80 без скидки
func (s *OrderServiceTestSuite) cart(customerID int64) domain.Cart {
	return domain.Cart{
		CustomerID:   customerID,
		RestaurantID: s.restaurant.ID,
		Lines:        []domain.CartLine{{ItemID: 1, RestaurantID: s.restaurant.ID, Quantity: 1}},
	}
}

func (s *OrderServiceTestSuite) expectMenu() {
	s.mockMenuRepo.EXPECT().
		GetByIDs(gomock.Any(), []int64{1}).
		Return([]domain.MenuItem{
			{ID: 1, RestaurantID: s.restaurant.ID, Name: "Steak", BasePrice: decimal.NewFromInt(80)},
		}, nil)
}

func (s *OrderServiceTestSuite) expectRestaurant() {
	s.mockRestRepo.EXPECT().
		GetByID(gomock.Any(), s.restaurant.ID).
		Return(s.restaurant, nil)
}

func (s *OrderServiceTestSuite) TestPlaceOrder() {
	var customerID int64 = 1
	collectionTime := time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(80)

	s.expectRestaurant()
	s.expectMenu()

	s.mockAcctRepo.EXPECT().
		GetByCustomerIDForUpdate(gomock.Any(), customerID).
		Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.NewFromInt(500)}, nil)
	s.mockAcctRepo.EXPECT().
		AddToBalance(gomock.Any(), customerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64, delta decimal.Decimal) (*domain.CreditAccount, error) {
			s.True(delta.Equal(total.Neg()))
			return &domain.CreditAccount{CustomerID: id, Balance: decimal.NewFromInt(420)}, nil
		})
	s.mockOrderRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.OrderCreate) (*domain.Order, error) {
			s.Equal(customerID, args.CustomerID)
			s.Equal(s.restaurant.ID, args.RestaurantID)
			s.Equal(domain.OrderStatusPending, args.Status)
			s.Equal(collectionTime, args.CollectionTime)
			s.True(args.Total.Equal(total))
			// цена фиксируется в строке заказа
			s.Require().Len(args.Lines, 1)
			s.True(args.Lines[0].UnitPrice.Equal(total))
			return &domain.Order{
				ID:             100,
				CustomerID:     args.CustomerID,
				RestaurantID:   args.RestaurantID,
				Lines:          args.Lines,
				Total:          args.Total,
				CollectionTime: args.CollectionTime,
				Status:         args.Status,
			}, nil
		})

	result, err := s.service.PlaceOrder(context.Background(), PlaceOrderArgs{
		Cart:           s.cart(customerID),
		CollectionTime: collectionTime,
		CustomerID:     customerID,
	})
	s.Require().NoError(err)
	s.Nil(result.Escalation)
	s.Require().NotNil(result.Order)
	s.Equal(int64(100), result.Order.ID)
	s.Equal(domain.OrderStatusPending, result.Order.Status)
}

func (s *OrderServiceTestSuite) TestPlaceOrder_Escalation() {
	var customerID int64 = 1
	collectionTime := time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC)

	s.expectRestaurant()
	s.expectMenu()

	// баланс 50 при сумме 80: списания нет, заказ не создается
	s.mockAcctRepo.EXPECT().
		GetByCustomerIDForUpdate(gomock.Any(), customerID).
		Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.NewFromInt(50)}, nil)

	result, err := s.service.PlaceOrder(context.Background(), PlaceOrderArgs{
		Cart:           s.cart(customerID),
		CollectionTime: collectionTime,
		CustomerID:     customerID,
	})
	s.Require().NoError(err)
	s.Nil(result.Order)
	s.Require().NotNil(result.Escalation)
	s.True(result.Escalation.Total.Equal(decimal.NewFromInt(80)))
	s.True(result.Escalation.Balance.Equal(decimal.NewFromInt(50)))
	s.True(result.Escalation.Shortfall.Equal(decimal.NewFromInt(30)))
}

func (s *OrderServiceTestSuite) TestPlaceOrder_ScheduleViolation() {
	var customerID int64 = 1
	s.expectRestaurant()

	// суббота закрыта
	_, err := s.service.PlaceOrder(context.Background(), PlaceOrderArgs{
		Cart:           s.cart(customerID),
		CollectionTime: time.Date(2026, 3, 7, 13, 0, 0, 0, time.UTC),
		CustomerID:     customerID,
	})
	var vErr *domain.ScheduleViolationError
	s.Require().ErrorAs(err, &vErr)
	s.Equal("closed on Saturday", vErr.Reason)
}

func (s *OrderServiceTestSuite) TestPlaceOrder_TimeWindow() {
	var customerID int64 = 1

	cases := []struct {
		name       string
		collection time.Time
		reason     string
	}{
		{
			name:       "past",
			collection: time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
			reason:     "collection time is in the past",
		}, {
			name:       "beyond booking window",
			collection: time.Date(2026, 3, 9, 13, 0, 0, 0, time.UTC),
			reason:     "collection time is beyond the 3 day booking window",
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := s.service.PlaceOrder(context.Background(), PlaceOrderArgs{
				Cart:           s.cart(customerID),
				CollectionTime: t.collection,
				CustomerID:     customerID,
			})
			var vErr *domain.ScheduleViolationError
			s.Require().ErrorAs(err, &vErr)
			s.Equal(t.reason, vErr.Reason)
		})
	}
}

func (s *OrderServiceTestSuite) TestPlaceOrder_CartInvariant() {
	var customerID int64 = 1
	collectionTime := time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		cart domain.Cart
	}{
		{
			name: "empty cart",
			cart: domain.Cart{CustomerID: customerID, RestaurantID: s.restaurant.ID},
		}, {
			name: "mixed restaurants",
			cart: domain.Cart{
				CustomerID:   customerID,
				RestaurantID: s.restaurant.ID,
				Lines: []domain.CartLine{
					{ItemID: 1, RestaurantID: s.restaurant.ID, Quantity: 1},
					{ItemID: 2, RestaurantID: 99, Quantity: 1},
				},
			},
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			_, err := s.service.PlaceOrder(context.Background(), PlaceOrderArgs{
				Cart:           t.cart,
				CollectionTime: collectionTime,
				CustomerID:     customerID,
			})
			s.Require().ErrorIs(err, domain.ErrCartRestaurantConflict)
		})
	}
}

func (s *OrderServiceTestSuite) TestPlaceOrderWithLoan() {
	var customerID int64 = 1
	var approverID int64 = 55
	collectionTime := time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC)

	s.expectRestaurant()
	s.expectMenu()

	// баланс 50, сумма 80: списание в минус, недостача 30
	s.mockAcctRepo.EXPECT().
		GetByCustomerIDForUpdate(gomock.Any(), customerID).
		Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.NewFromInt(50)}, nil)
	s.mockAcctRepo.EXPECT().
		AddToBalance(gomock.Any(), customerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64, delta decimal.Decimal) (*domain.CreditAccount, error) {
			s.True(delta.Equal(decimal.NewFromInt(-80)))
			return &domain.CreditAccount{CustomerID: id, Balance: decimal.NewFromInt(-30)}, nil
		})
	s.mockOrderRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.OrderCreate) (*domain.Order, error) {
			return &domain.Order{ID: 100, CustomerID: args.CustomerID, Total: args.Total, Status: args.Status}, nil
		})
	s.mockLoanRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.LoanCreate) (*domain.Loan, error) {
			s.Equal(customerID, args.CustomerID)
			s.Equal(int64(100), args.OrderID)
			s.Equal(approverID, args.ApproverID)
			s.True(args.LoanAmount.Equal(decimal.NewFromInt(30)), "got loan amount %s", args.LoanAmount)
			return &domain.Loan{
				ID:         200,
				CustomerID: args.CustomerID,
				OrderID:    args.OrderID,
				LoanAmount: args.LoanAmount,
				Status:     domain.LoanStatusActive,
				ApproverID: args.ApproverID,
			}, nil
		})

	approval, err := s.service.PlaceOrderWithLoan(context.Background(), ApproveLoanArgs{
		Cart:           s.cart(customerID),
		CollectionTime: collectionTime,
		CustomerID:     customerID,
		ApproverID:     approverID,
		ApprovedAmount: decimal.NewFromInt(30),
	})
	s.Require().NoError(err)
	s.Require().NotNil(approval.Order)
	s.Require().NotNil(approval.Loan)
	s.Equal(domain.LoanStatusActive, approval.Loan.Status)
	s.True(approval.Loan.LoanAmount.Equal(decimal.NewFromInt(30)))
}

func (s *OrderServiceTestSuite) TestPlaceOrderWithLoan_NegativeStartingBalance() {
	var customerID int64 = 1
	var approverID int64 = 55
	collectionTime := time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC)

	s.expectRestaurant()
	s.expectMenu()

	// баланс уже -10: старый долг не входит в новый займ,
	// займ равен непокрытой части заказа, то есть всей сумме 80
	s.mockAcctRepo.EXPECT().
		GetByCustomerIDForUpdate(gomock.Any(), customerID).
		Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.NewFromInt(-10)}, nil)
	s.mockAcctRepo.EXPECT().
		AddToBalance(gomock.Any(), customerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64, delta decimal.Decimal) (*domain.CreditAccount, error) {
			s.True(delta.Equal(decimal.NewFromInt(-80)))
			return &domain.CreditAccount{CustomerID: id, Balance: decimal.NewFromInt(-90)}, nil
		})
	s.mockOrderRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.OrderCreate) (*domain.Order, error) {
			return &domain.Order{ID: 101, CustomerID: args.CustomerID, Total: args.Total, Status: args.Status}, nil
		})
	s.mockLoanRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.LoanCreate) (*domain.Loan, error) {
			s.True(args.LoanAmount.Equal(decimal.NewFromInt(80)), "got loan amount %s", args.LoanAmount)
			return &domain.Loan{
				ID:         201,
				CustomerID: args.CustomerID,
				OrderID:    args.OrderID,
				LoanAmount: args.LoanAmount,
				Status:     domain.LoanStatusActive,
				ApproverID: args.ApproverID,
			}, nil
		})

	approval, err := s.service.PlaceOrderWithLoan(context.Background(), ApproveLoanArgs{
		Cart:           s.cart(customerID),
		CollectionTime: collectionTime,
		CustomerID:     customerID,
		ApproverID:     approverID,
		ApprovedAmount: decimal.NewFromInt(100),
	})
	s.Require().NoError(err)
	s.Require().NotNil(approval.Loan)
	s.True(approval.Loan.LoanAmount.Equal(approval.Order.Total))
}

func (s *OrderServiceTestSuite) TestPlaceOrderWithLoan_NoShortfall() {
	var customerID int64 = 1
	collectionTime := time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC)

	s.expectRestaurant()
	s.expectMenu()

	s.mockAcctRepo.EXPECT().
		GetByCustomerIDForUpdate(gomock.Any(), customerID).
		Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.NewFromInt(100)}, nil)
	s.mockAcctRepo.EXPECT().
		AddToBalance(gomock.Any(), customerID, gomock.Any()).
		Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.NewFromInt(20)}, nil)
	s.mockOrderRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(&domain.Order{ID: 100, CustomerID: customerID}, nil)

	approval, err := s.service.PlaceOrderWithLoan(context.Background(), ApproveLoanArgs{
		Cart:           s.cart(customerID),
		CollectionTime: collectionTime,
		CustomerID:     customerID,
		ApproverID:     55,
		ApprovedAmount: decimal.NewFromInt(30),
	})
	s.Require().NoError(err)
	s.NotNil(approval.Order)
	// баланс покрыл заказ, займ не создавался
	s.Nil(approval.Loan)
}

func (s *OrderServiceTestSuite) TestPlaceOrderWithLoan_ExceedsApproval() {
	var customerID int64 = 1
	collectionTime := time.Date(2026, 3, 5, 13, 0, 0, 0, time.UTC)

	s.expectRestaurant()
	s.expectMenu()

	s.mockAcctRepo.EXPECT().
		GetByCustomerIDForUpdate(gomock.Any(), customerID).
		Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.NewFromInt(50)}, nil)
	s.mockAcctRepo.EXPECT().
		AddToBalance(gomock.Any(), customerID, gomock.Any()).
		Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.NewFromInt(-30)}, nil)

	_, err := s.service.PlaceOrderWithLoan(context.Background(), ApproveLoanArgs{
		Cart:           s.cart(customerID),
		CollectionTime: collectionTime,
		CustomerID:     customerID,
		ApproverID:     55,
		ApprovedAmount: decimal.NewFromInt(20),
	})
	s.Require().ErrorIs(err, domain.ErrLoanExceedsApproval)
}

func (s *OrderServiceTestSuite) TestPlaceOrderWithLoan_NoApprover() {
	_, err := s.service.PlaceOrderWithLoan(context.Background(), ApproveLoanArgs{
		Cart:       s.cart(1),
		CustomerID: 1,
	})
	s.Require().ErrorIs(err, domain.ErrUnauthorized)
}

func (s *OrderServiceTestSuite) TestCancel_Refunds() {
	var customerID int64 = 1
	total := decimal.NewFromInt(200)

	cases := []struct {
		name       string
		collection time.Time
		wantRefund decimal.Decimal
	}{
		{
			// до получения 4 часа при пороге 6: штраф 10%
			name:       "inside penalty window",
			collection: s.now.Add(4 * time.Hour),
			wantRefund: decimal.NewFromInt(180),
		}, {
			name:       "outside penalty window",
			collection: s.now.Add(8 * time.Hour),
			wantRefund: decimal.NewFromInt(200),
		}, {
			// ровно на пороге возврат полный
			name:       "at threshold",
			collection: s.now.Add(6 * time.Hour),
			wantRefund: decimal.NewFromInt(200),
		},
	}
	for i, t := range cases {
		s.Run(t.name, func() {
			orderID := int64(100 + i)
			order := &domain.Order{
				ID:             orderID,
				CustomerID:     customerID,
				RestaurantID:   s.restaurant.ID,
				Total:          total,
				CollectionTime: t.collection,
				Status:         domain.OrderStatusPending,
			}
			s.mockOrderRepo.EXPECT().
				GetByIDForUpdate(gomock.Any(), orderID).
				Return(order, nil)
			s.expectRestaurant()
			s.mockAcctRepo.EXPECT().
				GetByCustomerIDForUpdate(gomock.Any(), customerID).
				Return(&domain.CreditAccount{CustomerID: customerID, Balance: decimal.Zero}, nil)
			s.mockAcctRepo.EXPECT().
				AddToBalance(gomock.Any(), customerID, gomock.Any()).
				DoAndReturn(func(_ context.Context, id int64, delta decimal.Decimal) (*domain.CreditAccount, error) {
					s.True(delta.Equal(t.wantRefund), "got refund %s, want %s", delta, t.wantRefund)
					return &domain.CreditAccount{CustomerID: id, Balance: delta}, nil
				})
			s.mockOrderRepo.EXPECT().
				UpdateStatus(gomock.Any(), orderID, domain.OrderStatusCancelled).
				Return(&domain.Order{ID: orderID, Status: domain.OrderStatusCancelled}, nil)

			result, err := s.service.Cancel(context.Background(), CancelOrderArgs{
				OrderID:    orderID,
				CustomerID: customerID,
			})
			s.Require().NoError(err)
			s.True(result.Refund.Equal(t.wantRefund))
			s.Equal(domain.OrderStatusCancelled, result.Order.Status)
		})
	}
}

func (s *OrderServiceTestSuite) TestCancel_AlreadyCancelled() {
	order := &domain.Order{
		ID:         100,
		CustomerID: 1,
		Status:     domain.OrderStatusCancelled,
	}
	s.mockOrderRepo.EXPECT().
		GetByIDForUpdate(gomock.Any(), order.ID).
		Return(order, nil)

	// повторная отмена не задваивает возврат
	_, err := s.service.Cancel(context.Background(), CancelOrderArgs{OrderID: order.ID, CustomerID: 1})
	var terminalErr *domain.AlreadyTerminalError
	s.Require().ErrorAs(err, &terminalErr)
	s.Equal("order", terminalErr.Entity)
}

func (s *OrderServiceTestSuite) TestCancel_OwnerConflict() {
	order := &domain.Order{ID: 100, CustomerID: 2, Status: domain.OrderStatusPending}
	s.mockOrderRepo.EXPECT().
		GetByIDForUpdate(gomock.Any(), order.ID).
		Return(order, nil)

	_, err := s.service.Cancel(context.Background(), CancelOrderArgs{OrderID: order.ID, CustomerID: 1})
	s.Require().ErrorIs(err, domain.ErrOwnerConflict)
}

func (s *OrderServiceTestSuite) TestComplete() {
	order := &domain.Order{ID: 100, CustomerID: 1, Status: domain.OrderStatusPending}
	s.mockOrderRepo.EXPECT().
		GetByIDForUpdate(gomock.Any(), order.ID).
		Return(order, nil)
	s.mockOrderRepo.EXPECT().
		UpdateStatus(gomock.Any(), order.ID, domain.OrderStatusSuccess).
		Return(&domain.Order{ID: order.ID, Status: domain.OrderStatusSuccess}, nil)

	completed, err := s.service.Complete(context.Background(), order.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusSuccess, completed.Status)
}

func (s *OrderServiceTestSuite) TestComplete_AlreadyTerminal() {
	order := &domain.Order{ID: 100, Status: domain.OrderStatusSuccess}
	s.mockOrderRepo.EXPECT().
		GetByIDForUpdate(gomock.Any(), order.ID).
		Return(order, nil)

	_, err := s.service.Complete(context.Background(), order.ID)
	var terminalErr *domain.AlreadyTerminalError
	s.Require().ErrorAs(err, &terminalErr)
}
