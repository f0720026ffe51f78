package repository

import (
	"context"
	"errors"

	"household/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ItemFilter параметры фильтрации списка запасов
type ItemFilter struct {
	Category string
}

// LogFilter параметры фильтрации журнала расхода
type LogFilter struct {
	ResourceType string
}

// ItemRepository интерфейс репозитория запасов
type ItemRepository interface {
	CreateItem(ctx context.Context, it *domain.InventoryItem) error
	GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, it *domain.InventoryItem) error
	ListItems(ctx context.Context, f ItemFilter) ([]domain.InventoryItem, error)
}

// LogRepository интерфейс журнала расхода. Записи неизменяемы.
type LogRepository interface {
	CreateLog(ctx context.Context, l *domain.ConsumptionLog) error
	ListLogs(ctx context.Context, f LogFilter) ([]domain.ConsumptionLog, error)
}

// Reader is the read-only view handed out inside a read session.
type Reader interface {
	ListItems(ctx context.Context, f ItemFilter) ([]domain.InventoryItem, error)
	ListLogs(ctx context.Context, f LogFilter) ([]domain.ConsumptionLog, error)
}

// TxManager абстракция транзакции. Для in-memory: глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SessionManager выдаёт хэндл хранилища на время запроса и освобождает его на любом выходе.
type SessionManager interface {
	ReadSession(ctx context.Context, fn func(ctx context.Context, r Reader) error) error
}

// Store объединяет все возможности бэкенда хранилища
type Store interface {
	ItemRepository
	LogRepository
	TxManager
	SessionManager
	Close() error
}

// helper: empty filter matches everything
func matchesFilter(value, filter string) bool {
	return filter == "" || value == filter
}
