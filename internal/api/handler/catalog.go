package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/application"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
)

// CatalogHandler はホール・ジャンル・俳優・演目・公演の登録と参照を扱う
type CatalogHandler struct {
	service CatalogServiceInterface
}

func NewCatalogHandler(s CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: s}
}

type CreateHallRequest struct {
	Name       string `json:"name" validate:"required,max=255" example:"大ホール"`
	Rows       int    `json:"rows" validate:"required,gt=0" example:"20"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,gt=0" example:"30"`
}

type CreateGenreRequest struct {
	Name string `json:"name" validate:"required,max=255" example:"悲劇"`
}

type CreateActorRequest struct {
	FirstName string `json:"first_name" validate:"required,max=255" example:"Judi"`
	LastName  string `json:"last_name" validate:"required,max=255" example:"Dench"`
}

type CreatePlayRequest struct {
	Title       string   `json:"title" validate:"required,max=255" example:"ハムレット"`
	Description string   `json:"description" example:"シェイクスピアの四大悲劇のひとつ"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
}

type CreatePerformanceRequest struct {
	PlayID   string    `json:"play" validate:"required"`
	HallID   string    `json:"theatre_hall" validate:"required"`
	ShowTime time.Time `json:"show_time"`
}

// PerformanceResponse は登録された公演
type PerformanceResponse struct {
	ID       string    `json:"id"`
	PlayID   string    `json:"play"`
	HallID   string    `json:"theatre_hall"`
	ShowTime time.Time `json:"show_time"`
}

// CreateHall godoc
// @Summary ホールを登録
// @Tags halls
// @Accept json
// @Produce json
// @Param request body CreateHallRequest true "ホール情報"
// @Success 201 {object} HallResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /halls [post]
func (h *CatalogHandler) CreateHall(c echo.Context) error {
	var req CreateHallRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	th, err := h.service.CreateHall(c.Request().Context(), application.CreateHallInput{
		Name: req.Name, Rows: req.Rows, SeatsInRow: req.SeatsInRow,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toHallResponse(th))
}

// ListHalls godoc
// @Summary ホール一覧を取得
// @Tags halls
// @Produce json
// @Success 200 {array} HallResponse
// @Router /halls [get]
func (h *CatalogHandler) ListHalls(c echo.Context) error {
	halls, err := h.service.ListHalls(c.Request().Context())
	if err != nil {
		return err
	}
	res := make([]HallResponse, len(halls))
	for i, th := range halls {
		res[i] = toHallResponse(th)
	}
	return c.JSON(http.StatusOK, res)
}

// CreateGenre godoc
// @Summary ジャンルを登録
// @Tags genres
// @Accept json
// @Produce json
// @Param request body CreateGenreRequest true "ジャンル"
// @Success 201 {object} GenreResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "同名のジャンルが存在する"
// @Router /genres [post]
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	var req CreateGenreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	g, err := h.service.CreateGenre(c.Request().Context(), application.CreateGenreInput{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toGenreResponse(g))
}

// ListGenres godoc
// @Summary ジャンル一覧を取得
// @Tags genres
// @Produce json
// @Success 200 {array} GenreResponse
// @Router /genres [get]
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	genres, err := h.service.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}
	res := make([]GenreResponse, len(genres))
	for i, g := range genres {
		res[i] = toGenreResponse(g)
	}
	return c.JSON(http.StatusOK, res)
}

// CreateActor godoc
// @Summary 俳優を登録
// @Tags actors
// @Accept json
// @Produce json
// @Param request body CreateActorRequest true "俳優"
// @Success 201 {object} ActorResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /actors [post]
func (h *CatalogHandler) CreateActor(c echo.Context) error {
	var req CreateActorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.CreateActor(c.Request().Context(), application.CreateActorInput{
		FirstName: req.FirstName, LastName: req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toActorResponse(a))
}

// ListActors godoc
// @Summary 俳優一覧を取得
// @Tags actors
// @Produce json
// @Success 200 {array} ActorResponse
// @Router /actors [get]
func (h *CatalogHandler) ListActors(c echo.Context) error {
	actors, err := h.service.ListActors(c.Request().Context())
	if err != nil {
		return err
	}
	res := make([]ActorResponse, len(actors))
	for i, a := range actors {
		res[i] = toActorResponse(a)
	}
	return c.JSON(http.StatusOK, res)
}

// CreatePlay godoc
// @Summary 演目を登録
// @Tags plays
// @Accept json
// @Produce json
// @Param request body CreatePlayRequest true "演目情報（genres と actors はIDの配列）"
// @Success 201 {object} PlayDetailResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "ジャンルまたは俳優が存在しない"
// @Router /plays [post]
func (h *CatalogHandler) CreatePlay(c echo.Context) error {
	var req CreatePlayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.service.CreatePlay(c.Request().Context(), application.CreatePlayInput{
		Title: req.Title, Description: req.Description,
		GenreIDs: req.Genres, ActorIDs: req.Actors,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPlayDetailResponse(p))
}

// ListPlays godoc
// @Summary 演目一覧を取得
// @Tags plays
// @Produce json
// @Param title query string false "題名の部分一致"
// @Param actors query string false "俳優IDのカンマ区切り"
// @Param genres query string false "ジャンルIDのカンマ区切り"
// @Success 200 {array} PlayResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /plays [get]
func (h *CatalogHandler) ListPlays(c echo.Context) error {
	filter, err := play.ParseFilter(c.QueryParam("title"), c.QueryParam("actors"), c.QueryParam("genres"))
	if err != nil {
		return err
	}
	plays, err := h.service.ListPlays(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	res := make([]PlayResponse, len(plays))
	for i, p := range plays {
		res[i] = toPlayResponse(p)
	}
	return c.JSON(http.StatusOK, res)
}

// GetPlay godoc
// @Summary 演目の詳細を取得
// @Tags plays
// @Produce json
// @Param id path string true "演目ID"
// @Success 200 {object} PlayDetailResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /plays/{id} [get]
func (h *CatalogHandler) GetPlay(c echo.Context) error {
	p, err := h.service.GetPlay(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlayDetailResponse(p))
}

// CreatePerformance godoc
// @Summary 公演を登録
// @Tags performances
// @Accept json
// @Produce json
// @Param request body CreatePerformanceRequest true "公演情報"
// @Success 201 {object} PerformanceResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "演目またはホールが存在しない"
// @Router /performances [post]
func (h *CatalogHandler) CreatePerformance(c echo.Context) error {
	var req CreatePerformanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.service.CreatePerformance(c.Request().Context(), application.CreatePerformanceInput{
		PlayID: req.PlayID, HallID: req.HallID, ShowTime: req.ShowTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, PerformanceResponse{
		ID: p.ID, PlayID: p.PlayID, HallID: p.HallID, ShowTime: p.ShowTime,
	})
}
