package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"household/internal/domain"
)

// PostgresStore хранилище поверх пула pgx
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// pgQuerier is satisfied by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgHandleKey struct{}

// OpenPostgres connects to dsn, pings the server and ensures the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close blocks until all connections are returned to the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) q(ctx context.Context) pgQuerier {
	if h, ok := ctx.Value(pgHandleKey{}).(pgQuerier); ok {
		return h
	}
	return s.pool
}

func (s *PostgresStore) CreateItem(ctx context.Context, it *domain.InventoryItem) error {
	return s.q(ctx).QueryRow(ctx,
		`INSERT INTO inventory (name, quantity, unit, category, expiration_date) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		it.Name, it.Quantity, it.Unit, it.Category, it.ExpirationDate.UTC()).Scan(&it.ID)
}

func (s *PostgresStore) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var it domain.InventoryItem
	err := s.q(ctx).QueryRow(ctx,
		`SELECT id, name, quantity, unit, category, expiration_date FROM inventory WHERE id = $1`, id).
		Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.Category, &it.ExpirationDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *PostgresStore) UpdateItem(ctx context.Context, it *domain.InventoryItem) error {
	tag, err := s.q(ctx).Exec(ctx,
		`UPDATE inventory SET name = $1, quantity = $2, unit = $3, category = $4, expiration_date = $5 WHERE id = $6`,
		it.Name, it.Quantity, it.Unit, it.Category, it.ExpirationDate.UTC(), it.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListItems(ctx context.Context, f ItemFilter) ([]domain.InventoryItem, error) {
	rows, err := s.q(ctx).Query(ctx, `
SELECT id, name, quantity, unit, category, expiration_date
FROM inventory
WHERE ($1 = '' OR category = $1)
ORDER BY id`, f.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.InventoryItem, 0)
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.Category, &it.ExpirationDate); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) CreateLog(ctx context.Context, l *domain.ConsumptionLog) error {
	var ts *time.Time
	if !l.Timestamp.IsZero() {
		utc := l.Timestamp.UTC()
		ts = &utc
	}
	return s.q(ctx).QueryRow(ctx,
		`INSERT INTO consumption_logs (item_id, quantity, resource_type, timestamp)
VALUES ($1, $2, $3, COALESCE($4, now()))
RETURNING id, timestamp`,
		l.ItemID, l.Quantity, l.ResourceType, ts).Scan(&l.ID, &l.Timestamp)
}

func (s *PostgresStore) ListLogs(ctx context.Context, f LogFilter) ([]domain.ConsumptionLog, error) {
	rows, err := s.q(ctx).Query(ctx, `
SELECT id, item_id, quantity, resource_type, timestamp
FROM consumption_logs
WHERE ($1 = '' OR resource_type = $1)
ORDER BY id`, f.ResourceType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ConsumptionLog, 0)
	for rows.Next() {
		var l domain.ConsumptionLog
		if err := rows.Scan(&l.ID, &l.ItemID, &l.Quantity, &l.ResourceType, &l.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(context.WithValue(ctx, pgHandleKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReadSession acquires one pooled connection and releases it on every exit path.
func (s *PostgresStore) ReadSession(ctx context.Context, fn func(ctx context.Context, r Reader) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	return fn(context.WithValue(ctx, pgHandleKey{}, conn), s)
}
