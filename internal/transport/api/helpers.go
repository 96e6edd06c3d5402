package api

import (
	"net/http"
	"strconv"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

func getUserIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(middlewares.CurrentUserIDKey)
}

// pathID извлекает числовой id из параметра пути. При некорректном значении пишет 400
// и возвращает false.
func pathID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		_ = c.AbortWithError(http.StatusBadRequest, err).SetType(gin.ErrorTypeBind)
		return 0, false
	}
	return id, true
}

// CartParams — корзина в теле запроса. Цены клиент не присылает: расчет всегда
// по авторитетным данным меню.
type CartParams struct {
	RestaurantID int64            `binding:"required"            json:"restaurant_id"`
	Lines        []CartLineParams `binding:"required,min=1,dive" json:"lines"`
}

type CartLineParams struct {
	ItemID   int64 `binding:"required"       json:"item_id"`
	Quantity int32 `binding:"required,min=1" json:"quantity"`
}

func (p CartParams) toDomain(customerID int64) domain.Cart {
	cart := domain.Cart{
		CustomerID:   customerID,
		RestaurantID: p.RestaurantID,
		Lines:        make([]domain.CartLine, len(p.Lines)),
	}
	for i, line := range p.Lines {
		cart.Lines[i] = domain.CartLine{
			ItemID:       line.ItemID,
			RestaurantID: p.RestaurantID,
			Quantity:     line.Quantity,
		}
	}
	return cart
}
