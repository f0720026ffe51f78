package app

import (
	"context"
	"fmt"
	"time"

	"household/internal/domain"
	"household/internal/service"
)

// Seed loads a small demo household: a few perishables, some low stock and a week of food
// and energy logs ending at now.
func Seed(ctx context.Context, inv *service.InventoryService, now time.Time) ([]domain.InventoryItem, error) {
	day := 24 * time.Hour
	items := []domain.InventoryItem{
		{Name: "Spinach", Quantity: 1, Unit: "bag", Category: domain.ResourceFood, ExpirationDate: now.Add(day)},
		{Name: "Milk", Quantity: 2, Unit: "l", Category: domain.ResourceFood, ExpirationDate: now.Add(2 * day)},
		{Name: "Eggs", Quantity: 12, Unit: "pcs", Category: domain.ResourceFood, ExpirationDate: now.Add(10 * day)},
		{Name: "Rice", Quantity: 3, Unit: "kg", Category: domain.ResourceFood, ExpirationDate: now.Add(180 * day)},
		{Name: "Dish soap", Quantity: 1, Unit: "bottle", Category: "cleaning"},
	}

	created := make([]domain.InventoryItem, 0, len(items))
	for _, it := range items {
		c, err := inv.CreateItem(ctx, it)
		if err != nil {
			return created, fmt.Errorf("seeding %s: %w", it.Name, err)
		}
		created = append(created, *c)
	}

	// логи ссылаются на несуществующий id, чтобы не трогать запасы
	const detached = 1 << 40
	for i := 6; i >= 0; i-- {
		at := now.Add(-time.Duration(i) * day)
		logs := []domain.ConsumptionLog{
			{ItemID: detached, Quantity: 1.5 + 0.25*float64(6-i), ResourceType: domain.ResourceFood, Timestamp: at},
			{ItemID: detached, Quantity: 9 + float64(i%3), ResourceType: domain.ResourceEnergy, Timestamp: at},
		}
		for _, l := range logs {
			if _, err := inv.LogConsumption(ctx, l); err != nil {
				return created, fmt.Errorf("seeding %s log: %w", l.ResourceType, err)
			}
		}
	}
	return created, nil
}
