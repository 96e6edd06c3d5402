package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/repository/repoargs"
	"github.com/fsdevblog/tably/pkg/uow"
)

// loanCancelLock — минимальный возраст займа для отмены. Граница включительная:
// ровно через час отмена уже разрешена.
const loanCancelLock = time.Hour

const (
	noteChannelPayment = "payment"
	noteChannelSystem  = "system"
)

// LoanService — жизненный цикл займов: ACTIVE -> PAID | CANCELLED.
// Конечные статусы неизменяемы, журнал коммуникаций append-only и доступен в любом статусе.
type LoanService struct {
	uow      uow.UOW
	loanRepo LoanRepository
	clock    Clock
}

func NewLoanService(u uow.UOW, clock Clock) (*LoanService, error) {
	loanRepo, err := uow.GetRepositoryAs[LoanRepository](u, uow.RepositoryName(repoargs.LoanRepoName))
	if err != nil {
		return nil, err
	}
	return &LoanService{
		uow:      u,
		loanRepo: loanRepo,
		clock:    clock,
	}, nil
}

type MarkPaidArgs struct {
	LoanID        int64
	PaymentMethod string
	Notes         string
	Actor         string
}

// MarkPaid переводит ACTIVE займ в PAID и фиксирует способ оплаты в журнале.
// Леджер не трогается: списание произошло при создании займа.
func (l *LoanService) MarkPaid(ctx context.Context, args MarkPaidArgs) (*domain.Loan, error) {
	var paid *domain.Loan
	txErr := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		loanRepo, loan, lockErr := lockActiveLoan(c, tx, args.LoanID)
		if lockErr != nil {
			return lockErr
		}

		paidAt := l.clock.Now()
		var updErr error
		paid, updErr = loanRepo.UpdateStatus(c, repoargs.LoanStatusUpdate{
			ID:     loan.ID,
			Status: domain.LoanStatusPaid,
			PaidAt: &paidAt,
		})
		if updErr != nil {
			return fmt.Errorf("marking loan %d paid: %w", loan.ID, updErr)
		}

		text := fmt.Sprintf("paid via %s", args.PaymentMethod)
		if args.Notes != "" {
			text += ": " + args.Notes
		}
		if _, noteErr := loanRepo.CreateNote(c, repoargs.LoanNoteCreate{
			LoanID:  loan.ID,
			Channel: noteChannelPayment,
			Text:    text,
			Actor:   args.Actor,
		}); noteErr != nil {
			return fmt.Errorf("recording payment note for loan %d: %w", loan.ID, noteErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("loan mark paid: %w", txErr)
	}
	return paid, nil
}

type CancelLoanArgs struct {
	LoanID int64
	Notes  string
	Actor  string
}

// Cancel переводит ACTIVE займ в CANCELLED и возвращает LoanAmount на баланс клиента,
// реверсируя исходное списание. Займ моложе часа отклоняется с TooSoonToCancelError,
// в ошибке — оставшиеся минуты.
func (l *LoanService) Cancel(ctx context.Context, args CancelLoanArgs) (*domain.Loan, error) {
	var cancelled *domain.Loan
	txErr := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		loanRepo, loan, lockErr := lockActiveLoan(c, tx, args.LoanID)
		if lockErr != nil {
			return lockErr
		}

		elapsed := l.clock.Now().Sub(loan.CreatedAt)
		if elapsed < loanCancelLock {
			return &domain.TooSoonToCancelError{Remaining: loanCancelLock - elapsed}
		}

		var updErr error
		cancelled, updErr = loanRepo.UpdateStatus(c, repoargs.LoanStatusUpdate{
			ID:     loan.ID,
			Status: domain.LoanStatusCancelled,
		})
		if updErr != nil {
			return fmt.Errorf("cancelling loan %d: %w", loan.ID, updErr)
		}

		if _, creditErr := creditTx(c, tx, loan.CustomerID, loan.LoanAmount); creditErr != nil {
			return creditErr
		}

		text := "loan cancelled, amount credited back"
		if args.Notes != "" {
			text += ": " + args.Notes
		}
		if _, noteErr := loanRepo.CreateNote(c, repoargs.LoanNoteCreate{
			LoanID:  loan.ID,
			Channel: noteChannelSystem,
			Text:    text,
			Actor:   args.Actor,
		}); noteErr != nil {
			return fmt.Errorf("recording cancellation note for loan %d: %w", loan.ID, noteErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("loan cancel: %w", txErr)
	}
	return cancelled, nil
}

type AppendNoteArgs struct {
	LoanID  int64
	Channel string
	Text    string
	Actor   string
}

// AppendNote дописывает запись в журнал коммуникаций. Разрешено в любом статусе займа,
// прежние записи никогда не удаляются.
func (l *LoanService) AppendNote(ctx context.Context, args AppendNoteArgs) (*domain.LoanNote, error) {
	if _, err := l.loanRepo.GetByID(ctx, args.LoanID); err != nil {
		return nil, fmt.Errorf("loading loan %d: %w", args.LoanID, err)
	}
	note, err := l.loanRepo.CreateNote(ctx, repoargs.LoanNoteCreate{
		LoanID:  args.LoanID,
		Channel: args.Channel,
		Text:    args.Text,
		Actor:   args.Actor,
	})
	if err != nil {
		return nil, fmt.Errorf("appending note to loan %d: %w", args.LoanID, err)
	}
	return note, nil
}

// GetByID возвращает займ вместе с журналом коммуникаций.
func (l *LoanService) GetByID(ctx context.Context, loanID int64) (*domain.Loan, error) {
	loan, err := l.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	notes, notesErr := l.loanRepo.GetNotes(ctx, loanID)
	if notesErr != nil {
		return nil, fmt.Errorf("loading notes of loan %d: %w", loanID, notesErr)
	}
	loan.Notes = notes
	return loan, nil
}

// lockActiveLoan блокирует строку займа и проверяет, что он еще ACTIVE.
// Конкурентные переводы ACTIVE -> терминальный статус сериализуются этой блокировкой.
func lockActiveLoan(ctx context.Context, tx uow.TX, loanID int64) (LoanRepository, *domain.Loan, error) {
	loanRepo, repoErr := uow.GetAs[LoanRepository](tx, uow.RepositoryName(repoargs.LoanRepoName))
	if repoErr != nil {
		return nil, nil, repoErr //nolint:wrapcheck
	}
	loan, loanErr := loanRepo.GetByIDForUpdate(ctx, loanID)
	if loanErr != nil {
		return nil, nil, fmt.Errorf("locking loan %d: %w", loanID, loanErr)
	}
	if loan.Status != domain.LoanStatusActive {
		return nil, nil, &domain.AlreadyTerminalError{Entity: "loan", Status: string(loan.Status)}
	}
	return loanRepo, loan, nil
}
