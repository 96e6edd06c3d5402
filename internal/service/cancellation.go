package service

import (
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/shopspring/decimal"
)

// RefundForCancellation рассчитывает сумму возврата при отмене заказа.
//
// Правила:
//   - штрафы выключены — полный возврат;
//   - до времени получения осталось не меньше порога (граница включительно) — полный возврат;
//   - иначе возврат уменьшается на penalty.PenaltyRate процентов, округление half-up,
//     результат не опускается ниже нуля.
//
// Возврат монотонен по оставшемуся времени: чем дальше до получения, тем он не меньше.
func RefundForCancellation(
	total decimal.Decimal,
	penalty domain.PenaltySettings,
	collectionTime time.Time,
	now time.Time,
) decimal.Decimal {
	if !penalty.Enabled {
		return total
	}
	hoursUntilCollection := collectionTime.Sub(now).Hours()
	if hoursUntilCollection >= float64(penalty.TimeThresholdHours) {
		return total
	}
	multiplier := decimal.NewFromInt(percentBase - penalty.PenaltyRate)
	refund := total.Mul(multiplier).Div(decimal.NewFromInt(percentBase)).Round(minorUnitPlaces)
	if refund.IsNegative() {
		return decimal.Zero
	}
	return refund
}
