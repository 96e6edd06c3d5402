package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const daysPerWeek = 7

// DaySchedule — расписание ресторана на один день недели. Часы задаются целыми значениями 0-23,
// окно [StartHour, EndHour] включительно с обеих сторон. Если Open == false, часы игнорируются.
type DaySchedule struct {
	Open      bool `json:"open"`
	StartHour int  `json:"start_hour"`
	EndHour   int  `json:"end_hour"`
}

// WeeklySchedule — недельное расписание, индекс соответствует time.Weekday (0 = воскресенье).
type WeeklySchedule [daysPerWeek]DaySchedule

// Day возвращает расписание на день недели t.
func (w WeeklySchedule) Day(d time.Weekday) DaySchedule {
	return w[int(d)%daysPerWeek]
}

// PenaltySettings — политика ресторана по отменам и отрицательному балансу.
type PenaltySettings struct {
	Enabled              bool  `json:"enabled"`
	PenaltyRate          int64 `json:"penalty_rate"`           // процент 0-100
	TimeThresholdHours   int64 `json:"time_threshold_hours"`   // 0-48
	AllowNegativeBalance bool  `json:"allow_negative_balance"` // разрешен ли минус при автоматическом списании
}

type Restaurant struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Schedule  WeeklySchedule
	Penalty   PenaltySettings
}

// DiscountRule — процентная скидка на позицию меню, действующая до ValidUntil включительно.
// Истечение вычисляется при чтении и не мутирует хранимое состояние.
type DiscountRule struct {
	Percentage int64     `json:"percentage"` // строго между 0 и 100
	ValidUntil time.Time `json:"valid_until"`
}

// ExpiredAt сообщает, истекла ли скидка на момент now. Граница включительная:
// в момент now == ValidUntil скидка еще действует.
func (d DiscountRule) ExpiredAt(now time.Time) bool {
	return now.After(d.ValidUntil)
}

type MenuItem struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	RestaurantID int64
	Name         string
	BasePrice    decimal.Decimal
	Discount     *DiscountRule
}

// CreditAccount — предоплаченный баланс клиента. Мутируется исключительно операциями леджера.
type CreditAccount struct {
	ID         int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CustomerID int64
	Balance    decimal.Decimal
}

type OrderLine struct {
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"` // эффективная цена на момент оформления
	Quantity  int32           `json:"quantity"`
}

type Order struct {
	ID             int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CustomerID     int64
	RestaurantID   int64
	Lines          []OrderLine
	Total          decimal.Decimal
	CollectionTime time.Time
	Status         OrderStatusType
}

// LoanNote — запись журнала коммуникаций по займу. Журнал append-only.
type LoanNote struct {
	ID        int64
	LoanID    int64
	CreatedAt time.Time
	Channel   string
	Text      string
	Actor     string
}

// Loan — одобренный аванс на недостающую часть суммы заказа. LoanAmount покрывает
// недостачу, не полную стоимость заказа: LoanAmount <= Order.Total.
type Loan struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CustomerID   int64
	RestaurantID int64
	OrderID      int64
	LoanAmount   decimal.Decimal
	Status       LoanStatusType
	ApprovedAt   time.Time
	PaidAt       *time.Time
	ApproverID   int64
	Notes        []LoanNote
}
