package repoargs

import (
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/shopspring/decimal"
)

type LoanCreate struct {
	CustomerID   int64
	RestaurantID int64
	OrderID      int64
	LoanAmount   decimal.Decimal
	ApproverID   int64
	ApprovedAt   time.Time
}

type LoanNoteCreate struct {
	LoanID  int64
	Channel string
	Text    string
	Actor   string
}

type LoanStatusUpdate struct {
	ID     int64
	Status domain.LoanStatusType
	PaidAt *time.Time
}
