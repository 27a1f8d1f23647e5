// Package store persists items and users through gorm. Driver and query
// errors never leave this package: they are logged here and converted to
// the sentinel errors in internal/types.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/foodtrace/backend/internal/types"
)

// Option configures a store.
type Option func(*base)

// WithClock overrides the time source used for server-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithLogger sets the logger storage faults are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(b *base) { b.log = l }
}

type base struct {
	db  *gorm.DB
	now func() time.Time
	log *slog.Logger
}

func newBase(db *gorm.DB, component string, opts []Option) base {
	b := base{db: db, now: time.Now, log: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	b.log = b.log.With("component", component)
	return b
}

// timestamp is the server clock truncated to what every supported database
// can round-trip.
func (b *base) timestamp() time.Time {
	return b.now().UTC().Truncate(time.Microsecond)
}

func (b *base) fault(ctx context.Context, op string, err error) error {
	b.log.ErrorContext(ctx, "storage operation failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, types.ErrStorage)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
