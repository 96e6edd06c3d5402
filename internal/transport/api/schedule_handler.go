package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleSvs ScheduleServicer
}

func NewScheduleHandler(scheduleSvs ScheduleServicer) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleSvs: scheduleSvs,
	}
}

type ValidateCollectionTimeParams struct {
	CollectionTime time.Time `binding:"required" json:"collection_time"`
}

type CollectionTimeResponse struct {
	OK      bool   `json:"ok"`
	Reason  string `json:"reason,omitempty"`
	MinDate string `json:"min_date,omitempty"`
	MaxDate string `json:"max_date"`
}

// Validate POST RouteGroup + CollectionTimeRoute. Проверяет желаемое время получения
// против расписания ресторана и горизонта бронирования.
func (h *ScheduleHandler) Validate(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var params ValidateCollectionTimeParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	check, err := h.scheduleSvs.ValidateCollectionTime(reqCtx, restaurantID, params.CollectionTime)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := CollectionTimeResponse{
		OK:      check.OK,
		Reason:  check.Reason,
		MaxDate: check.MaxDate.Format(time.DateOnly),
	}
	if !check.MinDate.IsZero() {
		response.MinDate = check.MinDate.Format(time.DateOnly)
	}
	c.JSON(http.StatusOK, response)
}
