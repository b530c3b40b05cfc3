package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
)

type HallResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
}

func toHallResponse(h *hall.TheatreHall) HallResponse {
	return HallResponse{ID: h.ID, Name: h.Name, Rows: h.Rows, SeatsInRow: h.SeatsInRow, Capacity: h.Capacity()}
}

type GenreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toGenreResponse(g *genre.Genre) GenreResponse {
	return GenreResponse{ID: g.ID, Name: g.Name}
}

type ActorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func toActorResponse(a *actor.Actor) ActorResponse {
	return ActorResponse{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName, FullName: a.FullName()}
}

// PlayResponse は一覧用の演目。ジャンルは名前、出演者は氏名で返す
type PlayResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}

func toPlayResponse(p *play.Play) PlayResponse {
	res := PlayResponse{
		ID: p.ID, Title: p.Title, Description: p.Description,
		Genres: make([]string, len(p.Genres)),
		Actors: make([]string, len(p.Actors)),
	}
	for i, g := range p.Genres {
		res.Genres[i] = g.Name
	}
	for i, a := range p.Actors {
		res.Actors[i] = a.FullName()
	}
	return res
}

// PlayDetailResponse は詳細用の演目。ジャンルと出演者をオブジェクトで返す
type PlayDetailResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Genres      []GenreResponse `json:"genres"`
	Actors      []ActorResponse `json:"actors"`
}

func toPlayDetailResponse(p *play.Play) PlayDetailResponse {
	res := PlayDetailResponse{
		ID: p.ID, Title: p.Title, Description: p.Description,
		Genres: make([]GenreResponse, len(p.Genres)),
		Actors: make([]ActorResponse, len(p.Actors)),
	}
	for i, g := range p.Genres {
		res.Genres[i] = toGenreResponse(g)
	}
	for i, a := range p.Actors {
		res.Actors[i] = toActorResponse(a)
	}
	return res
}

// PlaceResponse は (行, 座席番号)
type PlaceResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// identity は認証済みの呼び出し元を返す。JWTAuth を通っていなければ 401
func identity(c echo.Context) (user.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return user.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	return id, nil
}
