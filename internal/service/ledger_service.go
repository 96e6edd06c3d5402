package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/repository/repoargs"
	"github.com/fsdevblog/tably/pkg/uow"
	"github.com/shopspring/decimal"
)

// LedgerService владеет балансом кредитных аккаунтов. Все мутации одного аккаунта
// сериализуются блокировкой строки внутри транзакции UnitOfWork.
type LedgerService struct {
	uow         uow.UOW
	accountRepo AccountRepository
}

func NewLedgerService(u uow.UOW) (*LedgerService, error) {
	accountRepo, err := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if err != nil {
		return nil, err
	}
	return &LedgerService{
		uow:         u,
		accountRepo: accountRepo,
	}, nil
}

type DebitOutcome struct {
	Result  domain.DebitResultType
	Account *domain.CreditAccount
}

// Debit списывает amount с аккаунта клиента в собственной транзакции.
func (l *LedgerService) Debit(
	ctx context.Context,
	customerID int64,
	amount decimal.Decimal,
	policy domain.PenaltySettings,
) (*DebitOutcome, error) {
	var outcome *DebitOutcome
	txErr := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var err error
		outcome, err = debitTx(c, tx, customerID, amount, policy, false)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("ledger debit: %w", txErr)
	}
	return outcome, nil
}

// debitTx выполняет списание внутри уже открытой транзакции tx.
//
// Правила:
//   - amount < 0 — DebitRejected, баланс не тронут;
//   - баланс покрывает сумму — списание и DebitApplied;
//   - баланс не покрывает: при loanOverride списываем в минус независимо от политики
//     (явное действие авторизованного сотрудника), без него минус допустим только
//     при policy.AllowNegativeBalance. Иначе — DebitInsufficientRequiresLoan без мутации.
func debitTx(
	ctx context.Context,
	tx uow.TX,
	customerID int64,
	amount decimal.Decimal,
	policy domain.PenaltySettings,
	loanOverride bool,
) (*DebitOutcome, error) {
	accountRepo, repoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
	if repoErr != nil {
		return nil, repoErr //nolint:wrapcheck
	}

	account, accErr := accountRepo.GetByCustomerIDForUpdate(ctx, customerID)
	if accErr != nil {
		return nil, fmt.Errorf("locking account of customer %d: %w", customerID, accErr)
	}

	if amount.IsNegative() {
		return &DebitOutcome{Result: domain.DebitRejected, Account: account}, nil
	}

	covered := account.Balance.GreaterThanOrEqual(amount)
	if !covered && !loanOverride && !policy.AllowNegativeBalance {
		return &DebitOutcome{Result: domain.DebitInsufficientRequiresLoan, Account: account}, nil
	}

	updated, updErr := accountRepo.AddToBalance(ctx, customerID, amount.Neg())
	if updErr != nil {
		return nil, fmt.Errorf("debiting account of customer %d: %w", customerID, updErr)
	}
	return &DebitOutcome{Result: domain.DebitApplied, Account: updated}, nil
}

// Credit пополняет баланс аккаунта. Всегда успешно при неотрицательной сумме,
// верхней границы баланса нет. Используется для пополнений и возвратов.
func (l *LedgerService) Credit(
	ctx context.Context,
	customerID int64,
	amount decimal.Decimal,
) (*domain.CreditAccount, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("ledger credit: negative amount %s: %w", amount, domain.ErrUnknown)
	}
	var account *domain.CreditAccount
	txErr := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var err error
		account, err = creditTx(c, tx, customerID, amount)
		return err
	})
	if txErr != nil {
		return nil, fmt.Errorf("ledger credit: %w", txErr)
	}
	return account, nil
}

func creditTx(
	ctx context.Context,
	tx uow.TX,
	customerID int64,
	amount decimal.Decimal,
) (*domain.CreditAccount, error) {
	accountRepo, repoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
	if repoErr != nil {
		return nil, repoErr //nolint:wrapcheck
	}
	if _, lockErr := accountRepo.GetByCustomerIDForUpdate(ctx, customerID); lockErr != nil {
		return nil, fmt.Errorf("locking account of customer %d: %w", customerID, lockErr)
	}
	account, err := accountRepo.AddToBalance(ctx, customerID, amount)
	if err != nil {
		return nil, fmt.Errorf("crediting account of customer %d: %w", customerID, err)
	}
	return account, nil
}

// Balance возвращает текущий аккаунт клиента.
func (l *LedgerService) Balance(ctx context.Context, customerID int64) (*domain.CreditAccount, error) {
	account, err := l.accountRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}

// CreateAccount создает аккаунт с нулевым балансом. Вызывается потоком регистрации клиента.
func (l *LedgerService) CreateAccount(ctx context.Context, customerID int64) (*domain.CreditAccount, error) {
	account, err := l.accountRepo.Create(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("creating account for customer %d: %w", customerID, err)
	}
	return account, nil
}
