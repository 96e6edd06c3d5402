package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrOwnerConflict       = errors.New("owner conflict")
	// ErrCartRestaurantConflict — попытка собрать корзину из позиций разных ресторанов.
	// Нарушение инварианта, ошибка вызывающей стороны.
	ErrCartRestaurantConflict = errors.New("cart is scoped to a single restaurant")
	// ErrLoanExceedsApproval — фактическая недостача превышает одобренную сумму займа.
	ErrLoanExceedsApproval = errors.New("shortfall exceeds approved loan amount")
	// ErrNoBookableDate — расписание закрыто на всю неделю вперед.
	ErrNoBookableDate = errors.New("no bookable date within a week")
)

// ScheduleViolationError — время получения заказа вне расписания ресторана.
// Причина всегда доводится до вызывающей стороны дословно.
type ScheduleViolationError struct {
	Reason string
}

func (e *ScheduleViolationError) Error() string {
	return "schedule violation: " + e.Reason
}

// TooSoonToCancelError — займ нельзя отменить раньше чем через час после создания.
type TooSoonToCancelError struct {
	Remaining time.Duration
}

func (e *TooSoonToCancelError) Error() string {
	minutes := int(e.Remaining.Minutes())
	if e.Remaining > time.Duration(minutes)*time.Minute {
		minutes++
	}
	return fmt.Sprintf("too soon to cancel: %d minutes remaining", minutes)
}

// AlreadyTerminalError — операция над займом или заказом в конечном статусе.
type AlreadyTerminalError struct {
	Entity string
	Status string
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("%s is already in terminal status %s", e.Entity, e.Status)
}
