//go:build unit

package commands_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"workshop-engine/internal/domain/booking"
	"workshop-engine/internal/infra"
	"workshop-engine/internal/pkg/clock"
	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/pkg/metrics"
	"workshop-engine/internal/usecase/commands"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// In-memory store mirroring the postgres repositories' semantics, so command
// tests exercise the same outcomes without a database.

type fakeMechanic struct {
	ID     uuid.UUID
	Name   string
	OnDuty bool
}

type fakeStore struct {
	parts     map[uuid.UUID]*shared.PartSnapshot
	mechanics map[uuid.UUID]*fakeMechanic
	bookings  map[uuid.UUID]*shared.BookingSnapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		parts:     make(map[uuid.UUID]*shared.PartSnapshot),
		mechanics: make(map[uuid.UUID]*fakeMechanic),
		bookings:  make(map[uuid.UUID]*shared.BookingSnapshot),
	}
}

func cloneBooking(b *shared.BookingSnapshot) *shared.BookingSnapshot {
	out := *b
	if b.PriorStatus != nil {
		p := *b.PriorStatus
		out.PriorStatus = &p
	}
	if b.PromotedBy != nil {
		p := *b.PromotedBy
		out.PromotedBy = &p
	}
	out.Lines = append([]booking.PartLine(nil), b.Lines...)
	return &out
}

func clonePart(p *shared.PartSnapshot) *shared.PartSnapshot {
	out := *p
	return &out
}

func (s *fakeStore) snapshot() *fakeStore {
	copied := newFakeStore()
	for id, p := range s.parts {
		copied.parts[id] = clonePart(p)
	}
	for id, m := range s.mechanics {
		mc := *m
		copied.mechanics[id] = &mc
	}
	for id, b := range s.bookings {
		copied.bookings[id] = cloneBooking(b)
	}
	return copied
}

func (s *fakeStore) restore(from *fakeStore) {
	s.parts = from.parts
	s.mechanics = from.mechanics
	s.bookings = from.bookings
}

// fakeUoW runs the function against the store directly, rolling the store
// back on error the way an aborted transaction would.
type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	before := u.store.snapshot()
	if err := fn(ctx, u.store); err != nil {
		u.store.restore(before)
		return err
	}
	return nil
}

func (s *fakeStore) Bookings() shared.BookingRepository   { return (*fakeBookingRepo)(s) }
func (s *fakeStore) Parts() shared.PartRepository         { return (*fakePartRepo)(s) }
func (s *fakeStore) Mechanics() shared.MechanicRepository { return (*fakeMechanicRepo)(s) }

type fakeBookingRepo fakeStore

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.bookings[b.ID()] = &shared.BookingSnapshot{
		ID:            b.ID(),
		CustomerName:  b.CustomerName(),
		Vehicle:       b.Vehicle(),
		MechanicID:    b.MechanicID(),
		ScheduledAt:   b.ScheduledAt(),
		Status:        b.Status(),
		PriorStatus:   b.PriorStatus(),
		PromotedBy:    b.PromotedBy(),
		EstimatedCost: b.EstimatedCost(),
		Lines:         append([]booking.PartLine(nil), b.Lines()...),
	}
	return nil
}

func (r *fakeBookingRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, infra.NewRepoErr("booking not found", infra.KindNotFound)
	}
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) WaitingByMechanic(_ context.Context, mechanicID uuid.UUID) ([]*shared.BookingSnapshot, error) {
	var out []*shared.BookingSnapshot
	for _, b := range r.bookings {
		if b.MechanicID == mechanicID && b.Status == booking.StatusWaiting {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *fakeBookingRepo) DirectlyPromotedBy(_ context.Context, id uuid.UUID) ([]*shared.BookingSnapshot, error) {
	var out []*shared.BookingSnapshot
	for _, b := range r.bookings {
		if b.PromotedBy != nil && *b.PromotedBy == id {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, to booking.Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return infra.NewRepoErr("booking not found", infra.KindNotFound)
	}
	b.Status = to
	return nil
}

func (r *fakeBookingRepo) MarkTerminal(_ context.Context, id uuid.UUID, to, prior booking.Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return infra.NewRepoErr("booking not found", infra.KindNotFound)
	}
	b.Status = to
	b.PriorStatus = &prior
	return nil
}

func (r *fakeBookingRepo) MarkPromoted(_ context.Context, id uuid.UUID, triggeredBy *uuid.UUID) error {
	b, ok := r.bookings[id]
	if !ok {
		return infra.NewRepoErr("booking not found", infra.KindNotFound)
	}
	if b.Status != booking.StatusWaiting {
		return infra.NewRepoErr("booking no longer waiting", infra.KindNotFound)
	}
	b.Status = booking.StatusReady
	if triggeredBy != nil {
		t := *triggeredBy
		b.PromotedBy = &t
	} else {
		b.PromotedBy = nil
	}
	return nil
}

func (r *fakeBookingRepo) MarkReverted(_ context.Context, id uuid.UUID, prior booking.Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return infra.NewRepoErr("booking not found", infra.KindNotFound)
	}
	b.Status = booking.StatusWaiting
	b.PriorStatus = &prior
	b.PromotedBy = nil
	return nil
}

func (r *fakeBookingRepo) MarkUndone(_ context.Context, id uuid.UUID, restored booking.Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return infra.NewRepoErr("booking not found", infra.KindNotFound)
	}
	b.Status = restored
	b.PriorStatus = nil
	b.PromotedBy = nil
	return nil
}

type fakePartRepo fakeStore

func (r *fakePartRepo) Create(_ context.Context, id uuid.UUID, name string, unitPrice decimal.Decimal, stockOnHand int) error {
	r.parts[id] = &shared.PartSnapshot{
		ID: id, Name: name, UnitPrice: unitPrice, StockOnHand: stockOnHand,
	}
	return nil
}

func (r *fakePartRepo) LockByIDs(_ context.Context, ids []uuid.UUID) ([]*shared.PartSnapshot, error) {
	return r.findByIDs(ids)
}

func (r *fakePartRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*shared.PartSnapshot, error) {
	return r.findByIDs(ids)
}

func (r *fakePartRepo) findByIDs(ids []uuid.UUID) ([]*shared.PartSnapshot, error) {
	out := make([]*shared.PartSnapshot, 0, len(ids))
	for _, id := range ids {
		p, ok := r.parts[id]
		if !ok {
			return nil, infra.NewRepoErr("part not found", infra.KindNotFound)
		}
		out = append(out, clonePart(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *fakePartRepo) Reserve(_ context.Context, partID uuid.UUID, qty int) error {
	p, ok := r.parts[partID]
	if !ok {
		return infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	p.Reserved += qty
	return nil
}

func (r *fakePartRepo) Release(_ context.Context, partID uuid.UUID, qty int) error {
	p, ok := r.parts[partID]
	if !ok {
		return infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	p.Reserved -= qty
	if p.Reserved < 0 {
		p.Reserved = 0
	}
	return nil
}

func (r *fakePartRepo) Consume(_ context.Context, partID uuid.UUID, qty int) error {
	p, ok := r.parts[partID]
	if !ok {
		return infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	if p.StockOnHand < qty {
		return infra.NewRepoErr("insufficient stock", infra.KindInsufficientStock)
	}
	p.StockOnHand -= qty
	p.Reserved -= qty
	if p.Reserved < 0 {
		p.Reserved = 0
	}
	return nil
}

func (r *fakePartRepo) Restock(_ context.Context, partID uuid.UUID, qty int) error {
	p, ok := r.parts[partID]
	if !ok {
		return infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	p.StockOnHand += qty
	p.Reserved += qty
	return nil
}

func (r *fakePartRepo) AdjustStock(_ context.Context, partID uuid.UUID, delta int) (*shared.PartSnapshot, error) {
	p, ok := r.parts[partID]
	if !ok {
		return nil, infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	if p.StockOnHand+delta < 0 {
		return nil, infra.NewRepoErr("stock would go negative", infra.KindInsufficientStock)
	}
	p.StockOnHand += delta
	return clonePart(p), nil
}

type fakeMechanicRepo fakeStore

func (r *fakeMechanicRepo) Create(_ context.Context, id uuid.UUID, name string, onDuty bool) error {
	r.mechanics[id] = &fakeMechanic{ID: id, Name: name, OnDuty: onDuty}
	return nil
}

func (r *fakeMechanicRepo) LockWithActiveCount(_ context.Context, id uuid.UUID) (*shared.MechanicSnapshot, error) {
	m, ok := r.mechanics[id]
	if !ok {
		return nil, infra.NewRepoErr("mechanic not found", infra.KindNotFound)
	}
	active := 0
	for _, b := range r.bookings {
		if b.MechanicID == id && b.Status.IsActive() {
			active++
		}
	}
	return &shared.MechanicSnapshot{ID: m.ID, Name: m.Name, OnDuty: m.OnDuty, ActiveJobs: active}, nil
}

func (r *fakeMechanicRepo) SetDuty(_ context.Context, id uuid.UUID, onDuty bool) error {
	m, ok := r.mechanics[id]
	if !ok {
		return infra.NewRepoErr("mechanic not found", infra.KindNotFound)
	}
	m.OnDuty = onDuty
	return nil
}

func (r *fakeMechanicRepo) AllIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.mechanics))
	for id := range r.mechanics {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []shared.LowStockEvent
}

func (n *fakeNotifier) LowStock(_ context.Context, evt shared.LowStockEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, evt)
}

// fixture wires every command implementation over the same fake store.
type fixture struct {
	store    *fakeStore
	clock    *clock.MockClock
	cfg      config.Config
	notifier *fakeNotifier

	admission  commands.AdmissionCommands
	promotion  commands.PromotionCommands
	transition commands.TransitionCommands
	undo       commands.UndoCommands
	mechanics  commands.MechanicCommands
	parts      commands.PartCommands
}

func newFixture() *fixture {
	store := newFakeStore()
	uow := &fakeUoW{store: store}
	clk := clock.NewMockClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	cfg := config.NewTestConfig()
	m := metrics.NewWith(prometheus.NewRegistry())
	notifier := &fakeNotifier{}

	promotion := commands.NewPromotionCommands(uow, cfg, m)
	return &fixture{
		store:      store,
		clock:      clk,
		cfg:        cfg,
		notifier:   notifier,
		admission:  commands.NewAdmissionCommands(uow, clk, cfg, m, notifier),
		promotion:  promotion,
		transition: commands.NewTransitionCommands(uow, promotion, clk, cfg, m, notifier),
		undo:       commands.NewUndoCommands(uow, clk, cfg, m, notifier),
		mechanics:  commands.NewMechanicCommands(uow, promotion),
		parts:      commands.NewPartCommands(uow, clk, cfg, notifier),
	}
}

func (f *fixture) seedMechanic(onDuty bool) uuid.UUID {
	id := uuid.New()
	f.store.mechanics[id] = &fakeMechanic{ID: id, Name: "Mel", OnDuty: onDuty}
	return id
}

func (f *fixture) seedPart(price string, stock, reserved int) uuid.UUID {
	id := uuid.New()
	f.store.parts[id] = &shared.PartSnapshot{
		ID:          id,
		Name:        "part-" + id.String()[:8],
		UnitPrice:   decimal.RequireFromString(price),
		StockOnHand: stock,
		Reserved:    reserved,
	}
	return id
}

func (f *fixture) seedBooking(mechanicID uuid.UUID, status booking.Status, scheduledAt time.Time, lines ...booking.PartLine) uuid.UUID {
	id := uuid.New()
	f.store.bookings[id] = &shared.BookingSnapshot{
		ID:            id,
		CustomerName:  "Cust " + id.String()[:8],
		Vehicle:       "VAN-1",
		MechanicID:    mechanicID,
		ScheduledAt:   scheduledAt,
		Status:        status,
		EstimatedCost: decimal.Zero,
		Lines:         lines,
	}
	return id
}

func (f *fixture) booking(id uuid.UUID) *shared.BookingSnapshot {
	return f.store.bookings[id]
}

func (f *fixture) part(id uuid.UUID) *shared.PartSnapshot {
	return f.store.parts[id]
}
