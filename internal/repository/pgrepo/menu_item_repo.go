package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/pkg/uow"
)

type MenuItemRepository struct {
	db uow.DBTX
}

func NewMenuItemRepository(db uow.DBTX) *MenuItemRepository {
	return &MenuItemRepository{db: db}
}

const menuItemsGetByIDsSQL = `
SELECT id, created_at, updated_at, restaurant_id, name, base_price,
       discount_percentage, discount_valid_until
FROM menu_items
WHERE id = ANY($1)`

// GetByIDs возвращает позиции меню по списку id. Отсутствующие id просто не попадают
// в результат, проверка полноты — забота вызывающей стороны.
func (m *MenuItemRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.MenuItem, error) {
	rows, err := m.db.Query(ctx, menuItemsGetByIDsSQL, ids)
	if err != nil {
		return nil, convertErr(err, "getting menu items by ids %v", ids)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		var discountPct *int64
		var discountUntil *time.Time

		if scanErr := rows.Scan(
			&item.ID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.RestaurantID,
			&item.Name,
			&item.BasePrice,
			&discountPct,
			&discountUntil,
		); scanErr != nil {
			return nil, convertErr(scanErr, "scanning menu item")
		}
		// скидка присутствует только целиком: процент вместе со сроком действия
		if discountPct != nil && discountUntil != nil {
			item.Discount = &domain.DiscountRule{
				Percentage: *discountPct,
				ValidUntil: *discountUntil,
			}
		}
		items = append(items, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating menu items")
	}
	return items, nil
}
