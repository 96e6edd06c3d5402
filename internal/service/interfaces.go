package service

import (
	"context"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Restaurant, error)
}

type MenuItemRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.MenuItem, error)
}

type AccountRepository interface {
	GetByCustomerID(ctx context.Context, customerID int64) (*domain.CreditAccount, error)
	// GetByCustomerIDForUpdate блокирует строку аккаунта до конца текущей транзакции.
	// Конкурентные списания с одного аккаунта сериализуются этой блокировкой.
	GetByCustomerIDForUpdate(ctx context.Context, customerID int64) (*domain.CreditAccount, error)
	AddToBalance(ctx context.Context, customerID int64, delta decimal.Decimal) (*domain.CreditAccount, error)
	Create(ctx context.Context, customerID int64) (*domain.CreditAccount, error)
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.OrderCreate) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatusType) (*domain.Order, error)
	GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Order, error)
}

type LoanRepository interface {
	Create(ctx context.Context, args repoargs.LoanCreate) (*domain.Loan, error)
	GetByID(ctx context.Context, id int64) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Loan, error)
	UpdateStatus(ctx context.Context, args repoargs.LoanStatusUpdate) (*domain.Loan, error)
	CreateNote(ctx context.Context, args repoargs.LoanNoteCreate) (*domain.LoanNote, error)
	GetNotes(ctx context.Context, loanID int64) ([]domain.LoanNote, error)
}
