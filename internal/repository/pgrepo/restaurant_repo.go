package pgrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/pkg/uow"
)

type RestaurantRepository struct {
	db uow.DBTX
}

func NewRestaurantRepository(db uow.DBTX) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantGetByIDSQL = `
SELECT id, created_at, updated_at, name, schedule,
       penalty_enabled, penalty_rate, time_threshold_hours, allow_negative_balance
FROM restaurants
WHERE id = $1`

// GetByID возвращает ресторан с расписанием и штрафной политикой. Расписание хранится
// одним jsonb документом: движок читает его целиком и только на чтение.
func (r *RestaurantRepository) GetByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	var scheduleRaw []byte

	row := r.db.QueryRow(ctx, restaurantGetByIDSQL, id)
	if err := row.Scan(
		&restaurant.ID,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
		&restaurant.Name,
		&scheduleRaw,
		&restaurant.Penalty.Enabled,
		&restaurant.Penalty.PenaltyRate,
		&restaurant.Penalty.TimeThresholdHours,
		&restaurant.Penalty.AllowNegativeBalance,
	); err != nil {
		return nil, convertErr(err, "finding restaurant by id %d", id)
	}

	if err := json.Unmarshal(scheduleRaw, &restaurant.Schedule); err != nil {
		return nil, fmt.Errorf("[repository/restaurant %d] decoding schedule: %w", id, err)
	}
	return &restaurant, nil
}
