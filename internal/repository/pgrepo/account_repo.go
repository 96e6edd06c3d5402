package pgrepo

import (
	"context"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db uow.DBTX
}

func NewAccountRepository(db uow.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

const (
	accountGetByCustomerIDSQL = `
SELECT id, created_at, updated_at, customer_id, balance
FROM credit_accounts
WHERE customer_id = $1`

	accountAddToBalanceSQL = `
UPDATE credit_accounts
SET balance = balance + $2, updated_at = now()
WHERE customer_id = $1
RETURNING id, created_at, updated_at, customer_id, balance`

	accountCreateSQL = `
INSERT INTO credit_accounts (customer_id, balance)
VALUES ($1, 0)
RETURNING id, created_at, updated_at, customer_id, balance`
)

func (a *AccountRepository) GetByCustomerID(ctx context.Context, customerID int64) (*domain.CreditAccount, error) {
	row := a.db.QueryRow(ctx, accountGetByCustomerIDSQL, customerID)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "finding account by customer id %d", customerID)
	}
	return account, nil
}

// GetByCustomerIDForUpdate блокирует строку аккаунта до конца транзакции. Вызов имеет смысл
// только внутри uow транзакции; на пуле соединений блокировка снимается немедленно.
func (a *AccountRepository) GetByCustomerIDForUpdate(
	ctx context.Context,
	customerID int64,
) (*domain.CreditAccount, error) {
	row := a.db.QueryRow(ctx, accountGetByCustomerIDSQL+" FOR UPDATE", customerID)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "locking account by customer id %d", customerID)
	}
	return account, nil
}

func (a *AccountRepository) AddToBalance(
	ctx context.Context,
	customerID int64,
	delta decimal.Decimal,
) (*domain.CreditAccount, error) {
	row := a.db.QueryRow(ctx, accountAddToBalanceSQL, customerID, delta)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "updating balance of customer %d", customerID)
	}
	return account, nil
}

func (a *AccountRepository) Create(ctx context.Context, customerID int64) (*domain.CreditAccount, error) {
	row := a.db.QueryRow(ctx, accountCreateSQL, customerID)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "creating account for customer %d", customerID)
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.CreditAccount, error) {
	var account domain.CreditAccount
	if err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.CustomerID,
		&account.Balance,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &account, nil
}
