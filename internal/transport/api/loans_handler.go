package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type LoansHandler struct {
	orderSvs OrderServicer
	loanSvs  LoanServicer
}

func NewLoansHandler(orderSvs OrderServicer, loanSvs LoanServicer) *LoansHandler {
	return &LoansHandler{
		orderSvs: orderSvs,
		loanSvs:  loanSvs,
	}
}

type ApproveLoanParams struct {
	CustomerID     int64           `binding:"required" json:"customer_id"`
	Cart           CartParams      `binding:"required" json:"cart"`
	CollectionTime time.Time       `binding:"required" json:"collection_time"`
	Amount         decimal.Decimal `binding:"required" json:"amount"`
}

type LoanNoteResponse struct {
	CreatedAt time.Time `json:"created_at"`
	Channel   string    `json:"channel"`
	Text      string    `json:"text"`
	Actor     string    `json:"actor"`
}

type LoanResponse struct {
	ID         int64                 `json:"id"`
	CustomerID int64                 `json:"customer_id"`
	OrderID    int64                 `json:"order_id"`
	LoanAmount float64               `json:"loan_amount"`
	Status     domain.LoanStatusType `json:"status"`
	ApprovedAt time.Time             `json:"approved_at"`
	PaidAt     *time.Time            `json:"paid_at,omitempty"`
	ApproverID int64                 `json:"approver_id"`
	Notes      []LoanNoteResponse    `json:"notes,omitempty"`
}

type LoanApprovalResponse struct {
	Order OrderResponse `json:"order"`
	Loan  *LoanResponse `json:"loan,omitempty"`
}

func newLoanResponse(loan *domain.Loan) *LoanResponse {
	response := &LoanResponse{
		ID:         loan.ID,
		CustomerID: loan.CustomerID,
		OrderID:    loan.OrderID,
		LoanAmount: loan.LoanAmount.InexactFloat64(),
		Status:     loan.Status,
		ApprovedAt: loan.ApprovedAt,
		PaidAt:     loan.PaidAt,
		ApproverID: loan.ApproverID,
	}
	for _, note := range loan.Notes {
		response.Notes = append(response.Notes, LoanNoteResponse{
			CreatedAt: note.CreatedAt,
			Channel:   note.Channel,
			Text:      note.Text,
			Actor:     note.Actor,
		})
	}
	return response
}

// Approve POST RouteGroup + StaffLoansRoute. Путь эскалации после 402 на оформлении:
// сотрудник одобряет займ, заказ оформляется со списанием в минус.
func (h *LoansHandler) Approve(c *gin.Context) {
	approverID := getUserIDFromContext(c)

	var params ApproveLoanParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	approval, err := h.orderSvs.PlaceOrderWithLoan(reqCtx, service.ApproveLoanArgs{
		Cart:           params.Cart.toDomain(params.CustomerID),
		CollectionTime: params.CollectionTime,
		CustomerID:     params.CustomerID,
		ApproverID:     approverID,
		ApprovedAmount: params.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanExceedsApproval):
			_ = c.AbortWithError(http.StatusConflict, err).SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrUnauthorized):
			c.AbortWithStatus(http.StatusForbidden)
		default:
			abortWithOrderError(c, err)
		}
		return
	}

	response := LoanApprovalResponse{Order: newOrderResponse(approval.Order)}
	if approval.Loan != nil {
		response.Loan = newLoanResponse(approval.Loan)
	}
	c.JSON(http.StatusCreated, response)
}

type UpdateLoanStatusParams struct {
	Status        domain.LoanStatusType `binding:"required,oneof=PAID CANCELLED" json:"status"`
	PaymentMethod string                `json:"payment_method"`
	Notes         string                `json:"notes"`
}

// UpdateStatus PATCH RouteGroup + StaffLoanRoute. Переводит ACTIVE займ в конечный статус.
// Отказ содержит actionable детали: оставшиеся минуты либо текущий статус.
func (h *LoansHandler) UpdateStatus(c *gin.Context) {
	approverID := getUserIDFromContext(c)
	loanID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var params UpdateLoanStatusParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	actor := fmt.Sprintf("staff:%d", approverID)
	var loan *domain.Loan
	var err error
	if params.Status == domain.LoanStatusPaid {
		loan, err = h.loanSvs.MarkPaid(reqCtx, service.MarkPaidArgs{
			LoanID:        loanID,
			PaymentMethod: params.PaymentMethod,
			Notes:         params.Notes,
			Actor:         actor,
		})
	} else {
		loan, err = h.loanSvs.Cancel(reqCtx, service.CancelLoanArgs{
			LoanID: loanID,
			Notes:  params.Notes,
			Actor:  actor,
		})
	}
	if err != nil {
		abortWithLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLoanResponse(loan))
}

type AppendNoteParams struct {
	Channel string `binding:"required,max=32" json:"channel"`
	Text    string `binding:"required"        json:"text"`
}

// AppendNote POST RouteGroup + StaffLoanNotesRoute. Дописывает запись журнала коммуникаций,
// допустимо в любом статусе займа.
func (h *LoansHandler) AppendNote(c *gin.Context) {
	approverID := getUserIDFromContext(c)
	loanID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var params AppendNoteParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	note, err := h.loanSvs.AppendNote(reqCtx, service.AppendNoteArgs{
		LoanID:  loanID,
		Channel: params.Channel,
		Text:    params.Text,
		Actor:   fmt.Sprintf("staff:%d", approverID),
	})
	if err != nil {
		abortWithLoanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, LoanNoteResponse{
		CreatedAt: note.CreatedAt,
		Channel:   note.Channel,
		Text:      note.Text,
		Actor:     note.Actor,
	})
}

// Show GET RouteGroup + StaffLoanRoute.
func (h *LoansHandler) Show(c *gin.Context) {
	loanID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	loan, err := h.loanSvs.GetByID(reqCtx, loanID)
	if err != nil {
		abortWithLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, newLoanResponse(loan))
}

func abortWithLoanError(c *gin.Context, err error) {
	var tooSoonErr *domain.TooSoonToCancelError
	var terminalErr *domain.AlreadyTerminalError

	switch {
	case errors.As(err, &tooSoonErr):
		_ = c.AbortWithError(http.StatusConflict, tooSoonErr).SetType(gin.ErrorTypePublic)
	case errors.As(err, &terminalErr):
		_ = c.AbortWithError(http.StatusConflict, terminalErr).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrRecordNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
