package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	pricingSvs PricingServicer
}

func NewCartHandler(pricingSvs PricingServicer) *CartHandler {
	return &CartHandler{
		pricingSvs: pricingSvs,
	}
}

type PricedLineResponse struct {
	ItemID         int64   `json:"item_id"`
	Name           string  `json:"name"`
	EffectivePrice float64 `json:"effective_price"`
	Quantity       int32   `json:"quantity"`
}

type CartPricingResponse struct {
	Lines []PricedLineResponse `json:"lines"`
	Total float64              `json:"total"`
}

// Price POST RouteGroup + CartPriceRoute. Рассчитывает корзину по действующим ценам
// с учетом неистекших скидок.
func (h *CartHandler) Price(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params CartParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	pricing, err := h.pricingSvs.PriceCart(reqCtx, params.toDomain(currentUserID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusUnprocessableEntity, err).SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := CartPricingResponse{
		Lines: make([]PricedLineResponse, len(pricing.Lines)),
		Total: pricing.Total.InexactFloat64(),
	}
	for i, line := range pricing.Lines {
		response.Lines[i] = PricedLineResponse{
			ItemID:         line.ItemID,
			Name:           line.Name,
			EffectivePrice: line.EffectivePrice.InexactFloat64(),
			Quantity:       line.Quantity,
		}
	}
	c.JSON(http.StatusOK, response)
}
