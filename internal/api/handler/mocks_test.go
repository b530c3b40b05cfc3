package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/application"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
)

// MockCatalogService はCatalogServiceInterfaceのモック
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateHall(ctx context.Context, input application.CreateHallInput) (*hall.TheatreHall, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hall.TheatreHall), args.Error(1)
}

func (m *MockCatalogService) ListHalls(ctx context.Context) ([]*hall.TheatreHall, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hall.TheatreHall), args.Error(1)
}

func (m *MockCatalogService) CreatePlay(ctx context.Context, input application.CreatePlayInput) (*play.Play, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*play.Play), args.Error(1)
}

func (m *MockCatalogService) ListPlays(ctx context.Context, filter play.Filter) ([]*play.Play, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*play.Play), args.Error(1)
}

func (m *MockCatalogService) GetPlay(ctx context.Context, id string) (*play.Play, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*play.Play), args.Error(1)
}

func (m *MockCatalogService) CreateGenre(ctx context.Context, input application.CreateGenreInput) (*genre.Genre, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genre.Genre), args.Error(1)
}

func (m *MockCatalogService) ListGenres(ctx context.Context) ([]*genre.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*genre.Genre), args.Error(1)
}

func (m *MockCatalogService) CreateActor(ctx context.Context, input application.CreateActorInput) (*actor.Actor, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actor.Actor), args.Error(1)
}

func (m *MockCatalogService) ListActors(ctx context.Context) ([]*actor.Actor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*actor.Actor), args.Error(1)
}

func (m *MockCatalogService) CreatePerformance(ctx context.Context, input application.CreatePerformanceInput) (*performance.Performance, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*performance.Performance), args.Error(1)
}

// MockAvailabilityService はAvailabilityServiceInterfaceのモック
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) ListPerformances(ctx context.Context, filter performance.Filter) ([]*performance.Summary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*performance.Summary), args.Error(1)
}

func (m *MockAvailabilityService) GetPerformance(ctx context.Context, id string) (*application.PerformanceDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.PerformanceDetail), args.Error(1)
}

func (m *MockAvailabilityService) AvailableSeats(ctx context.Context, performanceID string) (int, error) {
	args := m.Called(ctx, performanceID)
	return args.Int(0), args.Error(1)
}

// MockReservationService はReservationServiceInterfaceのモック
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) GetReservation(ctx context.Context, id string, identity user.Identity) (*reservation.Reservation, error) {
	args := m.Called(ctx, id, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationService) ListUserReservations(ctx context.Context, identity user.Identity, page, pageSize int) (*application.ReservationPage, error) {
	args := m.Called(ctx, identity, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.ReservationPage), args.Error(1)
}

func (m *MockReservationService) DeleteReservation(ctx context.Context, id string, identity user.Identity) error {
	args := m.Called(ctx, id, identity)
	return args.Error(0)
}

// serve はルーター経由でリクエストを処理し、エラーハンドラーを通したレスポンスを返す
func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var (
	customer = user.Identity{UserID: "user-1", Role: user.RoleCustomer}
	admin    = user.Identity{UserID: "admin-1", Role: user.RoleAdmin}
)
