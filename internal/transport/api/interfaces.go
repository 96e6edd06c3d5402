package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/service"
)

type ScheduleServicer interface {
	ValidateCollectionTime(
		ctx context.Context,
		restaurantID int64,
		candidate time.Time,
	) (*service.CollectionTimeCheck, error)
}

type PricingServicer interface {
	PriceCart(ctx context.Context, cart domain.Cart) (*service.CartPricing, error)
}

type OrderServicer interface {
	PlaceOrder(ctx context.Context, args service.PlaceOrderArgs) (*service.PlaceOrderResult, error)
	PlaceOrderWithLoan(ctx context.Context, args service.ApproveLoanArgs) (*service.LoanApproval, error)
	Cancel(ctx context.Context, args service.CancelOrderArgs) (*service.CancellationResult, error)
	Complete(ctx context.Context, orderID int64) (*domain.Order, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Order, error)
}

type LoanServicer interface {
	MarkPaid(ctx context.Context, args service.MarkPaidArgs) (*domain.Loan, error)
	Cancel(ctx context.Context, args service.CancelLoanArgs) (*domain.Loan, error)
	AppendNote(ctx context.Context, args service.AppendNoteArgs) (*domain.LoanNote, error)
	GetByID(ctx context.Context, loanID int64) (*domain.Loan, error)
}

type LedgerServicer interface {
	Balance(ctx context.Context, customerID int64) (*domain.CreditAccount, error)
	Credit(ctx context.Context, customerID int64, amount decimal.Decimal) (*domain.CreditAccount, error)
}
