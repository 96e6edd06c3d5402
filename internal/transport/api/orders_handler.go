package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/service"
	"github.com/gin-gonic/gin"
)

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

type PlaceOrderParams struct {
	Cart           CartParams `binding:"required" json:"cart"`
	CollectionTime time.Time  `binding:"required" json:"collection_time"`
}

type OrderLineResponse struct {
	ItemID    int64   `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int32   `json:"quantity"`
}

type OrderResponse struct {
	ID             int64                  `json:"id"`
	RestaurantID   int64                  `json:"restaurant_id"`
	Lines          []OrderLineResponse    `json:"lines"`
	Total          float64                `json:"total"`
	CollectionTime time.Time              `json:"collection_time"`
	Status         domain.OrderStatusType `json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
}

type EscalationResponse struct {
	Error     string  `json:"error"`
	Total     float64 `json:"total"`
	Balance   float64 `json:"balance"`
	Shortfall float64 `json:"shortfall"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	response := OrderResponse{
		ID:             order.ID,
		RestaurantID:   order.RestaurantID,
		Lines:          make([]OrderLineResponse, len(order.Lines)),
		Total:          order.Total.InexactFloat64(),
		CollectionTime: order.CollectionTime,
		Status:         order.Status,
		CreatedAt:      order.CreatedAt,
	}
	for i, line := range order.Lines {
		response.Lines[i] = OrderLineResponse{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice.InexactFloat64(),
			Quantity:  line.Quantity,
		}
	}
	return response
}

// Create POST RouteGroup + OrdersRoute. Оформляет заказ. Нехватка средств — не ошибка:
// клиент получает 402 с суммой недостачи и решает, эскалировать ли на одобрение займа.
func (o *OrdersHandler) Create(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params PlaceOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := o.orderSvs.PlaceOrder(reqCtx, service.PlaceOrderArgs{
		Cart:           params.Cart.toDomain(currentUserID),
		CollectionTime: params.CollectionTime,
		CustomerID:     currentUserID,
	})
	if err != nil {
		abortWithOrderError(c, err)
		return
	}

	if result.Escalation != nil {
		c.AbortWithStatusJSON(http.StatusPaymentRequired, EscalationResponse{
			Error:     "insufficient balance",
			Total:     result.Escalation.Total.InexactFloat64(),
			Balance:   result.Escalation.Balance.InexactFloat64(),
			Shortfall: result.Escalation.Shortfall.InexactFloat64(),
		})
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(result.Order))
}

// Index GET RouteGroup + UserOrdersRoute.
func (o *OrdersHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := o.orderSvs.GetByCustomerID(reqCtx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	if len(orders) == 0 {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = newOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, response)
}

type CancelOrderResponse struct {
	Refund float64                `json:"refund"`
	Status domain.OrderStatusType `json:"status"`
}

// Cancel POST RouteGroup + OrderCancelRoute. Отменяет заказ текущего клиента,
// возврат рассчитывается по штрафной политике ресторана.
func (o *OrdersHandler) Cancel(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := o.orderSvs.Cancel(reqCtx, service.CancelOrderArgs{
		OrderID:    orderID,
		CustomerID: currentUserID,
	})
	if err != nil {
		abortWithOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelOrderResponse{
		Refund: result.Refund.InexactFloat64(),
		Status: result.Order.Status,
	})
}

// Complete POST RouteGroup + StaffOrderCompleteRoute. Персонал отмечает заказ выданным.
func (o *OrdersHandler) Complete(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := o.orderSvs.Complete(reqCtx, orderID)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(order))
}

// abortWithOrderError переводит ошибки заказного конвейера в http статусы.
// ScheduleViolation и нарушение инварианта корзины доводятся до клиента дословно.
func abortWithOrderError(c *gin.Context, err error) {
	var scheduleErr *domain.ScheduleViolationError
	var terminalErr *domain.AlreadyTerminalError

	switch {
	case errors.As(err, &scheduleErr):
		_ = c.AbortWithError(http.StatusUnprocessableEntity, scheduleErr).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrCartRestaurantConflict):
		_ = c.AbortWithError(http.StatusUnprocessableEntity, err).SetType(gin.ErrorTypePublic)
	case errors.As(err, &terminalErr):
		_ = c.AbortWithError(http.StatusConflict, terminalErr).SetType(gin.ErrorTypePublic)
	case errors.Is(err, domain.ErrOwnerConflict):
		c.AbortWithStatus(http.StatusForbidden)
	case errors.Is(err, domain.ErrRecordNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
