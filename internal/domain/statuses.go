package domain

type OrderStatusType string

const (
	OrderStatusPending   OrderStatusType = "PENDING"
	OrderStatusSuccess   OrderStatusType = "SUCCESS"
	OrderStatusCancelled OrderStatusType = "CANCELLED"
)

// Terminal сообщает, является ли статус заказа конечным. Конечные заказы не мутируются.
func (s OrderStatusType) Terminal() bool {
	return s == OrderStatusSuccess || s == OrderStatusCancelled
}

type LoanStatusType string

const (
	LoanStatusActive    LoanStatusType = "ACTIVE"
	LoanStatusPaid      LoanStatusType = "PAID"
	LoanStatusCancelled LoanStatusType = "CANCELLED"
)

// Terminal сообщает, является ли статус займа конечным. Мутировать можно только ACTIVE займы.
func (s LoanStatusType) Terminal() bool {
	return s == LoanStatusPaid || s == LoanStatusCancelled
}

type DebitResultType string

const (
	// DebitApplied — списание выполнено, баланс обновлен.
	DebitApplied DebitResultType = "APPLIED"
	// DebitInsufficientRequiresLoan — средств недостаточно, баланс не тронут. Решение (займ или отказ)
	// остается за вызывающей стороной.
	DebitInsufficientRequiresLoan DebitResultType = "INSUFFICIENT_REQUIRES_LOAN"
	// DebitRejected — некорректные входные данные (например, отрицательная сумма).
	DebitRejected DebitResultType = "REJECTED"
)

type AccessLevelType string

const (
	AccessLevelCustomer AccessLevelType = "customer"
	AccessLevelStaff    AccessLevelType = "staff"
)
