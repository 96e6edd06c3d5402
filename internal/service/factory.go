package service

import (
	"fmt"

	"github.com/fsdevblog/tably/pkg/uow"
)

type AppServices struct {
	ScheduleService *ScheduleService
	PricingService  *PricingService
	LedgerService   *LedgerService
	OrderService    *OrderService
	LoanService     *LoanService
}

func Factory(unitOfWork uow.UOW, clock Clock) (*AppServices, error) {
	scheduleService, scheduleErr := NewScheduleService(unitOfWork, clock)
	if scheduleErr != nil {
		return nil, fmt.Errorf("service factory: %s", scheduleErr.Error())
	}

	pricingService, pricingErr := NewPricingService(unitOfWork, clock)
	if pricingErr != nil {
		return nil, fmt.Errorf("service factory: %s", pricingErr.Error())
	}

	ledgerService, ledgerErr := NewLedgerService(unitOfWork)
	if ledgerErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerErr.Error())
	}

	orderService, orderErr := NewOrderService(unitOfWork, pricingService, clock)
	if orderErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderErr.Error())
	}

	loanService, loanErr := NewLoanService(unitOfWork, clock)
	if loanErr != nil {
		return nil, fmt.Errorf("service factory: %s", loanErr.Error())
	}

	return &AppServices{
		ScheduleService: scheduleService,
		PricingService:  pricingService,
		LedgerService:   ledgerService,
		OrderService:    orderService,
		LoanService:     loanService,
	}, nil
}
