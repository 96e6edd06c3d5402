package repoargs

import (
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderCreate struct {
	CustomerID     int64
	RestaurantID   int64
	Lines          []domain.OrderLine
	Total          decimal.Decimal
	CollectionTime time.Time
	Status         domain.OrderStatusType
}
