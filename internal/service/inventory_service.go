package service

import (
	"context"
	"errors"
	"strings"

	"household/internal/domain"
	"household/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// InventoryService инкапсулирует бизнес-логику вокруг запасов и журнала расхода
type InventoryService struct {
	items repository.ItemRepository
	logs  repository.LogRepository
	tx    repository.TxManager
}

func NewInventoryService(items repository.ItemRepository, logs repository.LogRepository, tx repository.TxManager) *InventoryService {
	return &InventoryService{items: items, logs: logs, tx: tx}
}

func (s *InventoryService) CreateItem(ctx context.Context, it domain.InventoryItem) (*domain.InventoryItem, error) {
	it.Name = strings.TrimSpace(it.Name)
	it.Category = strings.TrimSpace(it.Category)
	if it.Name == "" || it.Category == "" {
		return nil, ErrInvalidInput
	}
	cp := it
	cp.ID = 0
	if err := s.items.CreateItem(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *InventoryService) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.items.GetItem(ctx, id)
}

func (s *InventoryService) ListItems(ctx context.Context, category string) ([]domain.InventoryItem, error) {
	return s.items.ListItems(ctx, repository.ItemFilter{Category: category})
}

// LogConsumption сохраняет запись и списывает количество с запаса в одной транзакции.
// An unknown item id is not an error: the log is kept and nothing is decremented.
// Stock is not clamped and may go negative.
func (s *InventoryService) LogConsumption(ctx context.Context, l domain.ConsumptionLog) (*domain.ConsumptionLog, error) {
	l.ResourceType = strings.TrimSpace(l.ResourceType)
	if l.ItemID <= 0 || l.Quantity < 0 || l.ResourceType == "" {
		return nil, ErrInvalidInput
	}

	var created *domain.ConsumptionLog
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cp := l
		cp.ID = 0
		if err := s.logs.CreateLog(ctx, &cp); err != nil {
			return err
		}

		it, err := s.items.GetItem(ctx, cp.ItemID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			created = &cp
			return nil
		case err != nil:
			return err
		}

		it.Quantity -= cp.Quantity
		if err := s.items.UpdateItem(ctx, it); err != nil {
			return err
		}
		created = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *InventoryService) ListLogs(ctx context.Context, resourceType string) ([]domain.ConsumptionLog, error) {
	return s.logs.ListLogs(ctx, repository.LogFilter{ResourceType: resourceType})
}
