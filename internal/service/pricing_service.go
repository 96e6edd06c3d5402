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

const (
	// minorUnitPlaces — количество знаков минорной единицы валюты.
	minorUnitPlaces = 2
	percentBase     = 100
)

// EffectivePrice возвращает действующую цену позиции на момент now. Скидка применяется,
// пока она не истекла; результат округляется до минорной единицы (half-up, decimal.Round
// для положительных сумм дает именно это). После истечения скидки цена возвращается
// к базовой, никогда не опускаясь ниже нее задним числом.
func EffectivePrice(item domain.MenuItem, now time.Time) decimal.Decimal {
	if item.Discount == nil || item.Discount.ExpiredAt(now) {
		return item.BasePrice
	}
	multiplier := decimal.NewFromInt(percentBase - item.Discount.Percentage)
	return item.BasePrice.Mul(multiplier).Div(decimal.NewFromInt(percentBase)).Round(minorUnitPlaces)
}

// CartTotal суммирует эффективные цены позиций корзины с учетом количества.
// Цены берутся из авторитетных данных меню (itemsByID), а не из клиентских значений в корзине.
func CartTotal(itemsByID map[int64]domain.MenuItem, lines []domain.CartLine, now time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		item, ok := itemsByID[line.ItemID]
		if !ok {
			return decimal.Zero, fmt.Errorf("cart line references unknown menu item %d: %w",
				line.ItemID, domain.ErrRecordNotFound)
		}
		total = total.Add(EffectivePrice(item, now).Mul(decimal.NewFromInt32(line.Quantity)))
	}
	return total, nil
}

type PricingService struct {
	menuRepo MenuItemRepository
	clock    Clock
}

func NewPricingService(u uow.UOW, clock Clock) (*PricingService, error) {
	menuRepo, err := uow.GetRepositoryAs[MenuItemRepository](u, uow.RepositoryName(repoargs.MenuItemRepoName))
	if err != nil {
		return nil, err
	}
	return &PricingService{
		menuRepo: menuRepo,
		clock:    clock,
	}, nil
}

type PricedLine struct {
	ItemID         int64
	Name           string
	EffectivePrice decimal.Decimal
	Quantity       int32
}

type CartPricing struct {
	Lines []PricedLine
	Total decimal.Decimal
}

// PriceCart рассчитывает корзину по действующим ценам меню.
func (p *PricingService) PriceCart(ctx context.Context, cart domain.Cart) (*CartPricing, error) {
	itemsByID, err := p.fetchItems(ctx, cart.Lines)
	if err != nil {
		return nil, err
	}

	now := p.clock.Now()
	pricing := &CartPricing{
		Lines: make([]PricedLine, len(cart.Lines)),
		Total: decimal.Zero,
	}
	for i, line := range cart.Lines {
		item := itemsByID[line.ItemID]
		price := EffectivePrice(item, now)
		pricing.Lines[i] = PricedLine{
			ItemID:         item.ID,
			Name:           item.Name,
			EffectivePrice: price,
			Quantity:       line.Quantity,
		}
		pricing.Total = pricing.Total.Add(price.Mul(decimal.NewFromInt32(line.Quantity)))
	}
	return pricing, nil
}

// fetchItems загружает позиции меню для строк корзины и индексирует их по id.
// Отсутствующая позиция — ошибка ErrRecordNotFound.
func (p *PricingService) fetchItems(
	ctx context.Context,
	lines []domain.CartLine,
) (map[int64]domain.MenuItem, error) {
	ids := make([]int64, len(lines))
	for i, line := range lines {
		ids[i] = line.ItemID
	}

	items, err := p.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("pricing cart: %w", err)
	}
	itemsByID := make(map[int64]domain.MenuItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}
	for _, line := range lines {
		if _, ok := itemsByID[line.ItemID]; !ok {
			return nil, fmt.Errorf("pricing cart: menu item %d: %w", line.ItemID, domain.ErrRecordNotFound)
		}
	}
	return itemsByID, nil
}
