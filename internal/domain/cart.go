package domain

import "github.com/shopspring/decimal"

type CartLine struct {
	ItemID       int64           `json:"item_id"`
	RestaurantID int64           `json:"restaurant_id"`
	UnitPrice    decimal.Decimal `json:"unit_price"` // цена на момент добавления, для отображения
	Quantity     int32           `json:"quantity"`   // >= 1
}

// Cart — корзина клиента, привязанная ровно к одному ресторану.
type Cart struct {
	CustomerID   int64      `json:"customer_id"`
	RestaurantID int64      `json:"restaurant_id"`
	Lines        []CartLine `json:"lines"`
}

// Add добавляет позицию в корзину. Позиция другого ресторана отклоняется с
// ErrCartRestaurantConflict, если вызывающая сторона явно не запросила замену корзины
// (replace == true: корзина очищается и переключается на ресторан новой позиции).
func (c *Cart) Add(line CartLine, replace bool) error {
	if len(c.Lines) > 0 && line.RestaurantID != c.RestaurantID {
		if !replace {
			return ErrCartRestaurantConflict
		}
		c.Lines = c.Lines[:0]
	}
	c.RestaurantID = line.RestaurantID
	c.Lines = append(c.Lines, line)
	return nil
}

// SingleRestaurant проверяет инвариант корзины: все позиции принадлежат ресторану restaurantID.
func (c *Cart) SingleRestaurant(restaurantID int64) bool {
	for _, line := range c.Lines {
		if line.RestaurantID != restaurantID {
			return false
		}
	}
	return true
}
