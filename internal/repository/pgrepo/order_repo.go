package pgrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/repository/repoargs"
	"github.com/fsdevblog/tably/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const (
	orderColumns = `id, created_at, updated_at, customer_id, restaurant_id, lines, total, collection_time, status`

	orderCreateSQL = `
INSERT INTO orders (customer_id, restaurant_id, lines, total, collection_time, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + orderColumns

	orderGetByIDSQL = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1`

	orderUpdateStatusSQL = `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns

	orderGetByCustomerIDSQL = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_id = $1
ORDER BY created_at DESC`
)

func (o *OrderRepository) Create(ctx context.Context, args repoargs.OrderCreate) (*domain.Order, error) {
	linesRaw, marshalErr := json.Marshal(args.Lines)
	if marshalErr != nil {
		return nil, fmt.Errorf("[repository/order] encoding lines: %w", marshalErr)
	}

	row := o.db.QueryRow(ctx, orderCreateSQL,
		args.CustomerID,
		args.RestaurantID,
		linesRaw,
		args.Total,
		args.CollectionTime,
		args.Status,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for customer %d", args.CustomerID)
	}
	return order, nil
}

func (o *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(o.db.QueryRow(ctx, orderGetByIDSQL, id))
	if err != nil {
		return nil, convertErr(err, "finding order by id %d", id)
	}
	return order, nil
}

// GetByIDForUpdate блокирует строку заказа до конца транзакции. Конкурентные отмена
// и выдача одного заказа сериализуются этой блокировкой.
func (o *OrderRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(o.db.QueryRow(ctx, orderGetByIDSQL+" FOR UPDATE", id))
	if err != nil {
		return nil, convertErr(err, "locking order by id %d", id)
	}
	return order, nil
}

func (o *OrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.OrderStatusType,
) (*domain.Order, error) {
	order, err := scanOrder(o.db.QueryRow(ctx, orderUpdateStatusSQL, id, status))
	if err != nil {
		return nil, convertErr(err, "updating status of order %d", id)
	}
	return order, nil
}

// GetByCustomerID возвращает заказы клиента, отсортированные по дате создания по убыванию.
func (o *OrderRepository) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Order, error) {
	rows, err := o.db.Query(ctx, orderGetByCustomerIDSQL, customerID)
	if err != nil {
		return nil, convertErr(err, "getting orders by customer id %d", customerID)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning order")
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "iterating orders")
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var linesRaw []byte

	if err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.CustomerID,
		&order.RestaurantID,
		&linesRaw,
		&order.Total,
		&order.CollectionTime,
		&order.Status,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if err := json.Unmarshal(linesRaw, &order.Lines); err != nil {
		return nil, fmt.Errorf("decoding order lines: %w", err)
	}
	return &order, nil
}
