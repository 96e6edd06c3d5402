package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BalanceHandler struct {
	ledgerSvs LedgerServicer
}

func NewBalanceHandler(ledgerSvs LedgerServicer) *BalanceHandler {
	return &BalanceHandler{
		ledgerSvs: ledgerSvs,
	}
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// Index GET RouteGroup + BalanceRoute.
func (b *BalanceHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := b.ledgerSvs.Balance(reqCtx, currentUserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, &BalanceResponse{Balance: account.Balance.InexactFloat64()})
}

type TopUpParams struct {
	Amount decimal.Decimal `binding:"required" json:"amount"`
}

// TopUp POST RouteGroup + BalanceTopUpRoute. Пополняет баланс; пополнение всегда успешно,
// верхней границы у баланса нет.
func (b *BalanceHandler) TopUp(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params TopUpParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}
	if !params.Amount.IsPositive() {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, errors.New("amount must be positive")).
			SetType(gin.ErrorTypePublic)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := b.ledgerSvs.Credit(reqCtx, currentUserID, params.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, &BalanceResponse{Balance: account.Balance.InexactFloat64()})
}
