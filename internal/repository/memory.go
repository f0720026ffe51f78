package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"household/internal/domain"
)

// MemoryStore объединённое in-memory хранилище запасов и журнала и простой генератор ID
type MemoryStore struct {
	mu        sync.RWMutex
	nextItem  int64
	nextLog   int64
	itemsByID map[int64]domain.InventoryItem
	logsByID  map[int64]domain.ConsumptionLog
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextItem:  1,
		nextLog:   1,
		itemsByID: make(map[int64]domain.InventoryItem),
		logsByID:  make(map[int64]domain.ConsumptionLog),
		now:       time.Now,
	}
}

// lock-aware helpers: inside a transaction or session the outer lock is already held
type lockKey struct{}

func isLocked(ctx context.Context) bool {
	v := ctx.Value(lockKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isLocked(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isLocked(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isLocked(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isLocked(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ Store = (*MemoryStore)(nil)

// ItemRepository implementation
func (m *MemoryStore) CreateItem(ctx context.Context, it *domain.InventoryItem) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	it.ID = m.nextItem
	m.nextItem++
	m.itemsByID[it.ID] = *it
	return nil
}

func (m *MemoryStore) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	it, ok := m.itemsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := it
	return &cp, nil
}

func (m *MemoryStore) UpdateItem(ctx context.Context, it *domain.InventoryItem) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.itemsByID[it.ID]; !ok {
		return ErrNotFound
	}
	m.itemsByID[it.ID] = *it
	return nil
}

func (m *MemoryStore) ListItems(ctx context.Context, f ItemFilter) ([]domain.InventoryItem, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.InventoryItem, 0, len(m.itemsByID))
	for _, it := range m.itemsByID {
		if !matchesFilter(it.Category, f.Category) {
			continue
		}
		out = append(out, it)
	}
	// listing order is insertion order
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LogRepository implementation
func (m *MemoryStore) CreateLog(ctx context.Context, l *domain.ConsumptionLog) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	l.ID = m.nextLog
	m.nextLog++
	if l.Timestamp.IsZero() {
		l.Timestamp = m.now()
	}
	m.logsByID[l.ID] = *l
	return nil
}

func (m *MemoryStore) ListLogs(ctx context.Context, f LogFilter) ([]domain.ConsumptionLog, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.ConsumptionLog, 0, len(m.logsByID))
	for _, l := range m.logsByID {
		if !matchesFilter(l.ResourceType, f.ResourceType) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// WithTransaction uses the write lock to emulate a transaction boundary
func (m *MemoryStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx = context.WithValue(ctx, lockKey{}, true)
	return fn(ctx)
}

// ReadSession holds the read lock for the duration of fn
func (m *MemoryStore) ReadSession(ctx context.Context, fn func(ctx context.Context, r Reader) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctx = context.WithValue(ctx, lockKey{}, true)
	return fn(ctx, m)
}

func (m *MemoryStore) Close() error { return nil }
