package pgrepo

import (
	"context"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/repository/repoargs"
	"github.com/fsdevblog/tably/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type LoanRepository struct {
	db uow.DBTX
}

func NewLoanRepository(db uow.DBTX) *LoanRepository {
	return &LoanRepository{db: db}
}

const (
	loanColumns = `id, created_at, updated_at, customer_id, restaurant_id, order_id,
       loan_amount, status, approved_at, paid_at, approver_id`

	loanCreateSQL = `
INSERT INTO loans (customer_id, restaurant_id, order_id, loan_amount, status, approved_at, approver_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + loanColumns

	loanGetByIDSQL = `
SELECT ` + loanColumns + `
FROM loans
WHERE id = $1`

	loanUpdateStatusSQL = `
UPDATE loans
SET status = $2, paid_at = $3, updated_at = now()
WHERE id = $1
RETURNING ` + loanColumns

	loanNoteCreateSQL = `
INSERT INTO loan_notes (loan_id, channel, text, actor)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, loan_id, channel, text, actor`

	loanNotesGetSQL = `
SELECT id, created_at, loan_id, channel, text, actor
FROM loan_notes
WHERE loan_id = $1
ORDER BY created_at ASC, id ASC`
)

func (l *LoanRepository) Create(ctx context.Context, args repoargs.LoanCreate) (*domain.Loan, error) {
	row := l.db.QueryRow(ctx, loanCreateSQL,
		args.CustomerID,
		args.RestaurantID,
		args.OrderID,
		args.LoanAmount,
		domain.LoanStatusActive,
		args.ApprovedAt,
		args.ApproverID,
	)
	loan, err := scanLoan(row)
	if err != nil {
		return nil, convertErr(err, "creating loan for order %d", args.OrderID)
	}
	return loan, nil
}

func (l *LoanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	loan, err := scanLoan(l.db.QueryRow(ctx, loanGetByIDSQL, id))
	if err != nil {
		return nil, convertErr(err, "finding loan by id %d", id)
	}
	return loan, nil
}

// GetByIDForUpdate блокирует строку займа до конца транзакции: два конкурентных перевода
// ACTIVE -> терминальный статус не пройдут оба.
func (l *LoanRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Loan, error) {
	loan, err := scanLoan(l.db.QueryRow(ctx, loanGetByIDSQL+" FOR UPDATE", id))
	if err != nil {
		return nil, convertErr(err, "locking loan by id %d", id)
	}
	return loan, nil
}

func (l *LoanRepository) UpdateStatus(ctx context.Context, args repoargs.LoanStatusUpdate) (*domain.Loan, error) {
	loan, err := scanLoan(l.db.QueryRow(ctx, loanUpdateStatusSQL, args.ID, args.Status, args.PaidAt))
	if err != nil {
		return nil, convertErr(err, "updating status of loan %d", args.ID)
	}
	return loan, nil
}

// CreateNote дописывает запись журнала коммуникаций. Журнал append-only:
// операций обновления и удаления записей у репозитория нет.
func (l *LoanRepository) CreateNote(ctx context.Context, args repoargs.LoanNoteCreate) (*domain.LoanNote, error) {
	var note domain.LoanNote
	row := l.db.QueryRow(ctx, loanNoteCreateSQL, args.LoanID, args.Channel, args.Text, args.Actor)
	if err := row.Scan(
		&note.ID,
		&note.CreatedAt,
		&note.LoanID,
		&note.Channel,
		&note.Text,
		&note.Actor,
	); err != nil {
		return nil, convertErr(err, "creating note for loan %d", args.LoanID)
	}
	return &note, nil
}

func (l *LoanRepository) GetNotes(ctx context.Context, loanID int64) ([]domain.LoanNote, error) {
	rows, err := l.db.Query(ctx, loanNotesGetSQL, loanID)
	if err != nil {
		return nil, convertErr(err, "getting notes of loan %d", loanID)
	}
	defer rows.Close()

	var notes []domain.LoanNote
	for rows.Next() {
		var note domain.LoanNote
		if scanErr := rows.Scan(
			&note.ID,
			&note.CreatedAt,
			&note.LoanID,
			&note.Channel,
			&note.Text,
			&note.Actor,
		); scanErr != nil {
			return nil, convertErr(scanErr, "scanning loan note")
		}
		notes = append(notes, note)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating loan notes")
	}
	return notes, nil
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var loan domain.Loan
	if err := row.Scan(
		&loan.ID,
		&loan.CreatedAt,
		&loan.UpdatedAt,
		&loan.CustomerID,
		&loan.RestaurantID,
		&loan.OrderID,
		&loan.LoanAmount,
		&loan.Status,
		&loan.ApprovedAt,
		&loan.PaidAt,
		&loan.ApproverID,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &loan, nil
}
