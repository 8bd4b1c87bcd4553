// Package book owns the group ledger: the append-only event log and the
// mutations that extend it.
//
// A Book serializes every mutation and query behind one mutex. After each
// successful mutation the member principals are re-derived from the event
// log and a copy of the state is handed to the background saver.
package book

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/chitfund/internal/calculator"
	"github.com/mmynk/chitfund/internal/metrics"
	"github.com/mmynk/chitfund/internal/models"
)

var tracer = otel.Tracer("github.com/mmynk/chitfund/internal/book")

// Book is the single-writer ledger of one savings group.
type Book struct {
	mu     sync.Mutex
	data   *models.GroupData
	closed bool

	now   func() time.Time
	newID func() string
	saver *persister
}

// Option configures a Book.
type Option func(*Book)

// WithClock overrides the time source. Tests use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// WithIDGenerator overrides UUID generation.
func WithIDGenerator(newID func() string) Option {
	return func(b *Book) { b.newID = newID }
}

// WithSaver persists a snapshot after every successful mutation.
func WithSaver(s Saver) Option {
	return func(b *Book) {
		if s != nil {
			b.saver = newPersister(s)
		}
	}
}

// New wraps data, which must already be migrated. The Book takes ownership
// of data; callers must not modify it afterwards.
func New(data *models.GroupData, opts ...Option) *Book {
	b := &Book{
		data:  data,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.data.MonthlySavingsTargets == nil {
		b.data.MonthlySavingsTargets = make(map[models.Month]decimal.Decimal)
	}
	calculator.ProjectPrincipals(b.data)
	b.observe()
	return b
}

// Close flushes the last pending snapshot. Mutations after Close fail with
// ErrClosed; queries keep working.
func (b *Book) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	p := b.saver
	b.mu.Unlock()

	if p != nil {
		p.close()
	}
}

// Snapshot returns a deep copy of the full state, including admin-only
// fields. It is meant for trusted in-process callers such as the CLI.
func (b *Book) Snapshot() *models.GroupData {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data.Clone()
}

// mutate runs fn under the lock and, on success, re-derives principals and
// schedules a save. fn must check the actor and validate its input before
// changing any state, so rejections are traced and counted like failures.
func (b *Book) mutate(ctx context.Context, op string, actor models.AuthUser, fn func(d *models.GroupData) error) error {
	_, span := tracer.Start(ctx, "book."+op, trace.WithAttributes(
		attribute.String("actor.role", string(actor.Role)),
		attribute.String("actor.id", actor.ID),
	))
	defer span.End()

	err := b.apply(fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.MutationsTotal.WithLabelValues(op, "error").Inc()
		slog.Debug("Ledger mutation rejected", "operation", op, "actor", actor.ID, "error", err)
		return err
	}

	metrics.MutationsTotal.WithLabelValues(op, "ok").Inc()
	slog.Info("Ledger mutation applied", "operation", op, "actor", actor.ID)
	return nil
}

func (b *Book) apply(fn func(d *models.GroupData) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if err := fn(b.data); err != nil {
		return err
	}

	calculator.ProjectPrincipals(b.data)
	b.observe()
	if b.saver != nil {
		b.saver.enqueue(b.data.Clone())
	}
	return nil
}

// read runs fn under the lock against the live state. fn must not retain
// references into d.
func (b *Book) read(fn func(d *models.GroupData)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b.data)
}

// observe publishes ledger gauges. Called with the lock held.
func (b *Book) observe() {
	netFunds, _ := calculator.NetFunds(b.data).Float64()
	burden, _ := calculator.ActiveLoanBurden(b.data).Float64()
	metrics.NetFunds.Set(netFunds)
	metrics.OutstandingPrincipal.Set(burden)
}

// stamp returns the time for a new loan event of the member. It is never
// earlier than, or equal to, the member's latest event, so replaying the log
// in timestamp order applies events in the order they were recorded.
// Called with the lock held.
func (b *Book) stamp(d *models.GroupData, memberID string) time.Time {
	now := b.now()
	if last := calculator.LastEventTime(d, memberID); !now.After(last) {
		now = last.Add(time.Nanosecond)
	}
	return now
}

func requireAdmin(actor models.AuthUser) error {
	if !actor.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}
