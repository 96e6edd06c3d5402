package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/tably/internal/domain"
	"github.com/fsdevblog/tably/internal/repository/repoargs"
	"github.com/fsdevblog/tably/pkg/uow"
	"github.com/shopspring/decimal"
)

// OrderService оркестрирует оформление заказа: инвариант корзины, расписание, цены,
// списание с баланса. Также владеет отменой заказа с расчетом возврата и отметкой выдачи.
type OrderService struct {
	uow            uow.UOW
	restaurantRepo RestaurantRepository
	orderRepo      OrderRepository
	pricing        *PricingService
	clock          Clock
}

func NewOrderService(u uow.UOW, pricing *PricingService, clock Clock) (*OrderService, error) {
	restaurantRepo, rErr := uow.GetRepositoryAs[RestaurantRepository](u, uow.RepositoryName(repoargs.RestaurantRepoName))
	if rErr != nil {
		return nil, rErr
	}
	orderRepo, oErr := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if oErr != nil {
		return nil, oErr
	}
	return &OrderService{
		uow:            u,
		restaurantRepo: restaurantRepo,
		orderRepo:      orderRepo,
		pricing:        pricing,
		clock:          clock,
	}, nil
}

type PlaceOrderArgs struct {
	Cart           domain.Cart
	CollectionTime time.Time
	CustomerID     int64
}

// InsufficientBalanceEscalation — результат (не ошибка) неудавшегося автоматического
// списания. Решение — эскалация на одобрение займа либо отказ от заказа — остается
// за вызывающей стороной.
type InsufficientBalanceEscalation struct {
	CustomerID   int64
	RestaurantID int64
	Total        decimal.Decimal
	Balance      decimal.Decimal
	Shortfall    decimal.Decimal
}

type PlaceOrderResult struct {
	Order      *domain.Order
	Escalation *InsufficientBalanceEscalation
}

// PlaceOrder оформляет заказ. Шаги, каждый прерывает конвейер при неудаче:
//  1. инвариант одного ресторана на корзину (нарушение — баг вызывающей стороны);
//  2. валидация времени получения: не в прошлом, в пределах горизонта бронирования,
//     попадает в расписание; причина отказа дословно;
//  3. расчет суммы по действующим ценам меню;
//  4. списание с баланса; при нехватке средств возвращается эскалация, заказ не создается.
//
// Время получения фиксируется при создании и повторно не валидируется.
func (o *OrderService) PlaceOrder(ctx context.Context, args PlaceOrderArgs) (*PlaceOrderResult, error) {
	restaurant, pricing, err := o.prepare(ctx, args.Cart, args.CollectionTime)
	if err != nil {
		return nil, err
	}
	total := pricing.Total

	var result PlaceOrderResult
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		outcome, debitErr := debitTx(c, tx, args.CustomerID, total, restaurant.Penalty, false)
		if debitErr != nil {
			return debitErr
		}

		switch outcome.Result {
		case domain.DebitApplied:
			order, createErr := createOrderTx(c, tx, repoargs.OrderCreate{
				CustomerID:     args.CustomerID,
				RestaurantID:   restaurant.ID,
				Lines:          orderLines(pricing),
				Total:          total,
				CollectionTime: args.CollectionTime,
				Status:         domain.OrderStatusPending,
			})
			if createErr != nil {
				return createErr
			}
			result.Order = order
			return nil
		case domain.DebitInsufficientRequiresLoan:
			result.Escalation = &InsufficientBalanceEscalation{
				CustomerID:   args.CustomerID,
				RestaurantID: restaurant.ID,
				Total:        total,
				Balance:      outcome.Account.Balance,
				Shortfall:    total.Sub(outcome.Account.Balance),
			}
			return nil
		default:
			return fmt.Errorf("debit of %s rejected: %w", total, domain.ErrUnknown)
		}
	})
	if txErr != nil {
		return nil, fmt.Errorf("placing order: %w", txErr)
	}
	return &result, nil
}

type ApproveLoanArgs struct {
	Cart           domain.Cart
	CollectionTime time.Time
	CustomerID     int64
	ApproverID     int64
	// ApprovedAmount — верхняя граница займа, одобренная сотрудником. Фактическая недостача
	// больше этой суммы отклоняется с ErrLoanExceedsApproval.
	ApprovedAmount decimal.Decimal
}

type LoanApproval struct {
	Order *domain.Order
	// Loan равен nil, если на момент одобрения баланс уже покрывал заказ и займ не потребовался.
	Loan *domain.Loan
}

// PlaceOrderWithLoan — путь эскалации: явное действие авторизованного сотрудника.
// Проходит те же шаги, что и PlaceOrder, но списывает полную сумму независимо от
// политики отрицательного баланса и создает ACTIVE займ на недостачу.
// Списание займа уже произошло здесь: погашение займа леджер не трогает.
func (o *OrderService) PlaceOrderWithLoan(ctx context.Context, args ApproveLoanArgs) (*LoanApproval, error) {
	if args.ApproverID <= 0 {
		return nil, fmt.Errorf("loan approval requires an approver: %w", domain.ErrUnauthorized)
	}
	restaurant, pricing, err := o.prepare(ctx, args.Cart, args.CollectionTime)
	if err != nil {
		return nil, err
	}
	total := pricing.Total

	var approval LoanApproval
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		outcome, debitErr := debitTx(c, tx, args.CustomerID, total, restaurant.Penalty, true)
		if debitErr != nil {
			return debitErr
		}
		if outcome.Result != domain.DebitApplied {
			return fmt.Errorf("debit of %s rejected: %w", total, domain.ErrUnknown)
		}

		// Недостача — часть суммы заказа, которую не покрыл баланс до списания.
		// Уже существующий минус в новый займ не входит: LoanAmount <= Order.Total.
		balanceBefore := outcome.Account.Balance.Add(total)
		covered := decimal.Min(decimal.Max(balanceBefore, decimal.Zero), total)
		shortfall := total.Sub(covered)
		if shortfall.GreaterThan(args.ApprovedAmount) {
			return fmt.Errorf("shortfall %s: %w", shortfall, domain.ErrLoanExceedsApproval)
		}

		order, createErr := createOrderTx(c, tx, repoargs.OrderCreate{
			CustomerID:     args.CustomerID,
			RestaurantID:   restaurant.ID,
			Lines:          orderLines(pricing),
			Total:          total,
			CollectionTime: args.CollectionTime,
			Status:         domain.OrderStatusPending,
		})
		if createErr != nil {
			return createErr
		}
		approval.Order = order

		if shortfall.IsZero() {
			return nil
		}

		loanRepo, loanRepoErr := uow.GetAs[LoanRepository](tx, uow.RepositoryName(repoargs.LoanRepoName))
		if loanRepoErr != nil {
			return loanRepoErr //nolint:wrapcheck
		}
		loan, loanErr := loanRepo.Create(c, repoargs.LoanCreate{
			CustomerID:   args.CustomerID,
			RestaurantID: restaurant.ID,
			OrderID:      order.ID,
			LoanAmount:   shortfall,
			ApproverID:   args.ApproverID,
			ApprovedAt:   o.clock.Now(),
		})
		if loanErr != nil {
			return fmt.Errorf("creating loan: %w", loanErr)
		}
		approval.Loan = loan
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("placing order with loan: %w", txErr)
	}
	return &approval, nil
}

type CancelOrderArgs struct {
	OrderID int64
	// CustomerID проверяет принадлежность заказа. Ноль — проверка пропускается
	// (путь персонала).
	CustomerID int64
}

type CancellationResult struct {
	Order  *domain.Order
	Refund decimal.Decimal
}

// Cancel отменяет PENDING заказ и возвращает на баланс сумму с учетом штрафной политики
// ресторана. Повторная отмена отклоняется с AlreadyTerminalError, возврат не задваивается.
func (o *OrderService) Cancel(ctx context.Context, args CancelOrderArgs) (*CancellationResult, error) {
	orderID := args.OrderID
	var result CancellationResult
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		order, orderErr := orderRepo.GetByIDForUpdate(c, orderID)
		if orderErr != nil {
			return fmt.Errorf("locking order %d: %w", orderID, orderErr)
		}
		if args.CustomerID != 0 && order.CustomerID != args.CustomerID {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrOwnerConflict)
		}
		if order.Status != domain.OrderStatusPending {
			return &domain.AlreadyTerminalError{Entity: "order", Status: string(order.Status)}
		}

		restaurant, restErr := o.restaurantRepo.GetByID(c, order.RestaurantID)
		if restErr != nil {
			return fmt.Errorf("loading restaurant %d: %w", order.RestaurantID, restErr)
		}

		refund := RefundForCancellation(order.Total, restaurant.Penalty, order.CollectionTime, o.clock.Now())
		if refund.IsPositive() {
			if _, creditErr := creditTx(c, tx, order.CustomerID, refund); creditErr != nil {
				return creditErr
			}
		}

		cancelled, updErr := orderRepo.UpdateStatus(c, orderID, domain.OrderStatusCancelled)
		if updErr != nil {
			return fmt.Errorf("cancelling order %d: %w", orderID, updErr)
		}
		result.Order = cancelled
		result.Refund = refund
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("cancelling order: %w", txErr)
	}
	return &result, nil
}

// Complete отмечает PENDING заказ выданным (SUCCESS). Вызывается персоналом при выдаче.
func (o *OrderService) Complete(ctx context.Context, orderID int64) (*domain.Order, error) {
	var completed *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		order, orderErr := orderRepo.GetByIDForUpdate(c, orderID)
		if orderErr != nil {
			return fmt.Errorf("locking order %d: %w", orderID, orderErr)
		}
		if order.Status != domain.OrderStatusPending {
			return &domain.AlreadyTerminalError{Entity: "order", Status: string(order.Status)}
		}
		var updErr error
		completed, updErr = orderRepo.UpdateStatus(c, orderID, domain.OrderStatusSuccess)
		if updErr != nil {
			return fmt.Errorf("completing order %d: %w", orderID, updErr)
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("completing order: %w", txErr)
	}
	return completed, nil
}

// GetByCustomerID возвращает заказы клиента, отсортированные по дате создания по убыванию.
func (o *OrderService) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// prepare выполняет общие для обоих путей оформления шаги: инвариант корзины,
// валидация времени получения, расчет цен.
func (o *OrderService) prepare(
	ctx context.Context,
	cart domain.Cart,
	collectionTime time.Time,
) (*domain.Restaurant, *CartPricing, error) {
	if len(cart.Lines) == 0 {
		return nil, nil, fmt.Errorf("empty cart: %w", domain.ErrCartRestaurantConflict)
	}
	if !cart.SingleRestaurant(cart.RestaurantID) {
		return nil, nil, domain.ErrCartRestaurantConflict
	}

	now := o.clock.Now()
	if collectionTime.Before(now) {
		return nil, nil, &domain.ScheduleViolationError{Reason: "collection time is in the past"}
	}
	if truncateToDate(collectionTime).After(MaximumBookableDate(now)) {
		return nil, nil, &domain.ScheduleViolationError{
			Reason: fmt.Sprintf("collection time is beyond the %d day booking window", MaxBookingDays),
		}
	}

	restaurant, restErr := o.restaurantRepo.GetByID(ctx, cart.RestaurantID)
	if restErr != nil {
		return nil, nil, fmt.Errorf("loading restaurant %d: %w", cart.RestaurantID, restErr)
	}

	if vErr := ValidateAgainstSchedule(restaurant.Schedule, collectionTime); vErr != nil {
		return nil, nil, vErr
	}

	pricing, priceErr := o.pricing.PriceCart(ctx, cart)
	if priceErr != nil {
		return nil, nil, priceErr
	}
	return restaurant, pricing, nil
}

// orderLines переносит рассчитанные строки корзины в строки заказа
// с зафиксированными эффективными ценами.
func orderLines(pricing *CartPricing) []domain.OrderLine {
	lines := make([]domain.OrderLine, len(pricing.Lines))
	for i, line := range pricing.Lines {
		lines[i] = domain.OrderLine{
			ItemID:    line.ItemID,
			Name:      line.Name,
			UnitPrice: line.EffectivePrice,
			Quantity:  line.Quantity,
		}
	}
	return lines
}

func createOrderTx(ctx context.Context, tx uow.TX, args repoargs.OrderCreate) (*domain.Order, error) {
	orderRepo, repoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
	if repoErr != nil {
		return nil, repoErr //nolint:wrapcheck
	}
	order, err := orderRepo.Create(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}
	return order, nil
}
