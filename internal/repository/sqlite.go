package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"household/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore хранилище поверх встроенной SQLite
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// sqlQuerier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlHandleKey struct{}

// OpenSQLite opens or creates the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) q(ctx context.Context) sqlQuerier {
	if h, ok := ctx.Value(sqlHandleKey{}).(sqlQuerier); ok {
		return h
	}
	return s.db
}

func (s *SQLiteStore) CreateItem(ctx context.Context, it *domain.InventoryItem) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO inventory (name, quantity, unit, category, expiration_date) VALUES (?, ?, ?, ?, ?)`,
		it.Name, it.Quantity, it.Unit, it.Category, formatTime(it.ExpirationDate))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	row := s.q(ctx).QueryRowContext(ctx,
		`SELECT id, name, quantity, unit, category, expiration_date FROM inventory WHERE id = ?`, id)
	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *SQLiteStore) UpdateItem(ctx context.Context, it *domain.InventoryItem) error {
	res, err := s.q(ctx).ExecContext(ctx,
		`UPDATE inventory SET name = ?, quantity = ?, unit = ?, category = ?, expiration_date = ? WHERE id = ?`,
		it.Name, it.Quantity, it.Unit, it.Category, formatTime(it.ExpirationDate), it.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListItems(ctx context.Context, f ItemFilter) ([]domain.InventoryItem, error) {
	query := `SELECT id, name, quantity, unit, category, expiration_date FROM inventory`
	var args []any
	if f.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, f.Category)
	}
	query += ` ORDER BY id`

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.InventoryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateLog(ctx context.Context, l *domain.ConsumptionLog) error {
	if l.Timestamp.IsZero() {
		l.Timestamp = s.now()
	}
	res, err := s.q(ctx).ExecContext(ctx,
		`INSERT INTO consumption_logs (item_id, quantity, resource_type, timestamp) VALUES (?, ?, ?, ?)`,
		l.ItemID, l.Quantity, l.ResourceType, formatTime(l.Timestamp))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

func (s *SQLiteStore) ListLogs(ctx context.Context, f LogFilter) ([]domain.ConsumptionLog, error) {
	query := `SELECT id, item_id, quantity, resource_type, timestamp FROM consumption_logs`
	var args []any
	if f.ResourceType != "" {
		query += ` WHERE resource_type = ?`
		args = append(args, f.ResourceType)
	}
	query += ` ORDER BY id`

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]domain.ConsumptionLog, 0)
	for rows.Next() {
		var l domain.ConsumptionLog
		var ts string
		if err := rows.Scan(&l.ID, &l.ItemID, &l.Quantity, &l.ResourceType, &ts); err != nil {
			return nil, err
		}
		if l.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("log %d timestamp: %w", l.ID, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(context.WithValue(ctx, sqlHandleKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// ReadSession pins one connection for the duration of fn and returns it to the pool afterwards.
func (s *SQLiteStore) ReadSession(ctx context.Context, fn func(ctx context.Context, r Reader) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	return fn(context.WithValue(ctx, sqlHandleKey{}, conn), s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(r rowScanner) (domain.InventoryItem, error) {
	var it domain.InventoryItem
	var exp string
	if err := r.Scan(&it.ID, &it.Name, &it.Quantity, &it.Unit, &it.Category, &exp); err != nil {
		return it, err
	}
	t, err := parseTime(exp)
	if err != nil {
		return it, fmt.Errorf("item %d expiration: %w", it.ID, err)
	}
	it.ExpirationDate = t
	return it, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
