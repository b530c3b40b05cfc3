package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/transaction"
)

// === Mock implementations ===

// MockTxManager implements transaction.Manager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (transaction.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transaction.Tx), args.Error(1)
}

// MockTx implements transaction.Tx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockReservationRepository implements reservation.Repository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, tx transaction.Tx, r *reservation.Reservation) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockReservationRepository) Delete(ctx context.Context, tx transaction.Tx, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

// MockTicketRepository implements ticket.Repository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Insert(ctx context.Context, tx transaction.Tx, tickets ...*ticket.Ticket) error {
	args := m.Called(ctx, tx, tickets)
	return args.Error(0)
}

func (m *MockTicketRepository) TakenSeats(ctx context.Context, performanceID string) ([]ticket.Place, error) {
	args := m.Called(ctx, performanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ticket.Place), args.Error(1)
}

func (m *MockTicketRepository) ListByReservations(ctx context.Context, reservationIDs []string) (map[string][]*ticket.Ticket, error) {
	args := m.Called(ctx, reservationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) CountByPerformance(ctx context.Context, performanceID string) (int, error) {
	args := m.Called(ctx, performanceID)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepository) DeleteByReservation(ctx context.Context, tx transaction.Tx, reservationID string) (int, error) {
	args := m.Called(ctx, tx, reservationID)
	return args.Int(0), args.Error(1)
}

// MockPerformanceRepository implements performance.Repository
type MockPerformanceRepository struct {
	mock.Mock
}

func (m *MockPerformanceRepository) Create(ctx context.Context, p *performance.Performance) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPerformanceRepository) GetByID(ctx context.Context, id string) (*performance.Performance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.Performance), args.Error(1)
}

func (m *MockPerformanceRepository) List(ctx context.Context, filter performance.Filter) ([]*performance.Summary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.Summary), args.Error(1)
}

// MockHallRepository implements hall.Repository
type MockHallRepository struct {
	mock.Mock
}

func (m *MockHallRepository) Create(ctx context.Context, h *hall.TheatreHall) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHallRepository) GetByID(ctx context.Context, id string) (*hall.TheatreHall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hall.TheatreHall), args.Error(1)
}

func (m *MockHallRepository) List(ctx context.Context) ([]*hall.TheatreHall, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hall.TheatreHall), args.Error(1)
}

// MockPlayRepository implements play.Repository
type MockPlayRepository struct {
	mock.Mock
}

func (m *MockPlayRepository) Create(ctx context.Context, p *play.Play) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlayRepository) GetByID(ctx context.Context, id string) (*play.Play, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*play.Play), args.Error(1)
}

func (m *MockPlayRepository) List(ctx context.Context, filter play.Filter) ([]*play.Play, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*play.Play), args.Error(1)
}

// MockGenreRepository implements genre.Repository
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(ctx context.Context, g *genre.Genre) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*genre.Genre), args.Error(1)
}

func (m *MockGenreRepository) GetByIDs(ctx context.Context, ids []string) ([]*genre.Genre, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*genre.Genre), args.Error(1)
}

// MockActorRepository implements actor.Repository
type MockActorRepository struct {
	mock.Mock
}

func (m *MockActorRepository) Create(ctx context.Context, a *actor.Actor) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActorRepository) List(ctx context.Context) ([]*actor.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*actor.Actor), args.Error(1)
}

func (m *MockActorRepository) GetByIDs(ctx context.Context, ids []string) ([]*actor.Actor, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*actor.Actor), args.Error(1)
}

// MockPerformanceCache implements PerformanceCache
type MockPerformanceCache struct {
	mock.Mock
}

func (m *MockPerformanceCache) Get(ctx context.Context, id string) (*performance.Performance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.Performance), args.Error(1)
}

func (m *MockPerformanceCache) Set(ctx context.Context, p *performance.Performance, ttl time.Duration) error {
	args := m.Called(ctx, p, ttl)
	return args.Error(0)
}

// testPerformance は 5行×10席 のホールで上演される公演
func testPerformance(id string) *performance.Performance {
	return &performance.Performance{
		ID:       id,
		PlayID:   "play-1",
		HallID:   "hall-1",
		ShowTime: time.Date(2030, 1, 31, 19, 0, 0, 0, time.UTC),
		Play:     &play.Play{ID: "play-1", Title: "ハムレット"},
		Hall:     &hall.TheatreHall{ID: "hall-1", Name: "メインホール", Rows: 5, SeatsInRow: 10},
	}
}
