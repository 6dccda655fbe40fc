package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gastroguide/internal/logger"
	"gastroguide/model"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

var ErrBookingIDExhausted = errors.New("could not generate a unique booking id")

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const maxBookingIDAttempts = 20

const bookingColumns = "id, customer, email, phone, date, time, guests, table_pref, status, created_at"

// SQLStore keeps bookings and menu items in SQLite or PostgreSQL.
// Queries are written with ? placeholders and rebound per dialect.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	logger  logger.Logger

	now  func() time.Time
	intn func(n int) int
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sql.DB, dialect Dialect, log logger.Logger) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialect,
		logger:  logger.Component(log, "SQLStore"),
		now:     time.Now,
		intn:    rand.Intn,
	}
}

// NewSQLite opens (creating if needed) a SQLite database file.
func NewSQLite(path string, log logger.Logger) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return NewSQLStore(db, DialectSQLite, log), nil
}

// NewPostgres opens a PostgreSQL connection pool.
func NewPostgres(dsn string, maxOpen, maxIdle int, log logger.Logger) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewSQLStore(db, DialectPostgres, log), nil
}

func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ==================== menu ====================

// ListAvailable returns available menu items sorted by category then name.
func (s *SQLStore) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, name, category, description, price, image, available FROM menu_items WHERE available = ? ORDER BY category, name`), true)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	items := []model.MenuItem{}
	for rows.Next() {
		var (
			item        model.MenuItem
			description sql.NullString
			image       sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &description, &item.Price, &image, &item.Available); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		item.Description = description.String
		item.Image = image.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// ==================== bookings ====================

// Find returns (nil, nil) when no booking has the id.
func (s *SQLStore) Find(ctx context.Context, id string) (*model.Booking, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`), id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}
	return b, nil
}

// Create inserts a confirmed booking under a freshly generated id.
func (s *SQLStore) Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	id, err := s.newBookingID(ctx)
	if err != nil {
		return nil, err
	}

	tablePref := req.TablePref
	if tablePref == "" {
		tablePref = "Any"
	}

	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO bookings (id, customer, email, phone, date, time, guests, table_pref, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		id, req.Customer, nullable(req.Email), nullable(req.Phone), req.Date, req.Time, req.Guests, tablePref, string(model.BookingConfirmed))
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	s.logger.Info("booking created", map[string]interface{}{"booking_id": id, "guests": req.Guests})

	b, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("booking %s missing after insert", id)
	}
	return b, nil
}

// Cancel marks the booking cancelled. It reports whether a row changed.
func (s *SQLStore) Cancel(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE bookings SET status = ? WHERE id = ?`), string(model.BookingCancelled), id)
	if err != nil {
		return false, fmt.Errorf("cancel booking %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancel booking %s: %w", id, err)
	}
	return n > 0, nil
}

// List returns every booking, newest first.
func (s *SQLStore) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *SQLStore) exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM bookings WHERE id = ?`), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check booking id: %w", err)
	}
	return true, nil
}

// newBookingID builds "BK" + last four digits of the millisecond clock +
// a three digit random suffix, retrying the suffix on collision.
func (s *SQLStore) newBookingID(ctx context.Context) (string, error) {
	stamp := s.now().UnixMilli() % 10000
	for i := 0; i < maxBookingIDAttempts; i++ {
		id := fmt.Sprintf("BK%d%d", stamp, 100+s.intn(900))
		taken, err := s.exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrBookingIDExhausted
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		b                       model.Booking
		email, phone, tablePref sql.NullString
		status, createdAt       sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Customer, &email, &phone, &b.Date, &b.Time, &b.Guests, &tablePref, &status, &createdAt); err != nil {
		return nil, err
	}
	b.Email = email.String
	b.Phone = phone.String
	b.TablePref = tablePref.String
	b.Status = model.BookingStatus(status.String)
	if b.Status == "" {
		b.Status = model.BookingConfirmed
	}
	b.CreatedAt = createdAt.String
	return &b, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
