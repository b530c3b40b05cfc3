package handler

import (
	"context"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/application"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
)

// CatalogServiceInterface はカタログ管理サービスのインターフェース
type CatalogServiceInterface interface {
	CreateHall(ctx context.Context, input application.CreateHallInput) (*hall.TheatreHall, error)
	ListHalls(ctx context.Context) ([]*hall.TheatreHall, error)
	CreateGenre(ctx context.Context, input application.CreateGenreInput) (*genre.Genre, error)
	ListGenres(ctx context.Context) ([]*genre.Genre, error)
	CreateActor(ctx context.Context, input application.CreateActorInput) (*actor.Actor, error)
	ListActors(ctx context.Context) ([]*actor.Actor, error)
	CreatePlay(ctx context.Context, input application.CreatePlayInput) (*play.Play, error)
	ListPlays(ctx context.Context, filter play.Filter) ([]*play.Play, error)
	GetPlay(ctx context.Context, id string) (*play.Play, error)
	CreatePerformance(ctx context.Context, input application.CreatePerformanceInput) (*performance.Performance, error)
}

// AvailabilityServiceInterface は公演と空席数のサービスのインターフェース
type AvailabilityServiceInterface interface {
	ListPerformances(ctx context.Context, filter performance.Filter) ([]*performance.Summary, error)
	GetPerformance(ctx context.Context, id string) (*application.PerformanceDetail, error)
	AvailableSeats(ctx context.Context, performanceID string) (int, error)
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, id string, identity user.Identity) (*reservation.Reservation, error)
	ListUserReservations(ctx context.Context, identity user.Identity, page, pageSize int) (*application.ReservationPage, error)
	DeleteReservation(ctx context.Context, id string, identity user.Identity) error
}
