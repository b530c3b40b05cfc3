package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/performance"
)

// PerformanceHandler は公演の参照と空席数を扱う
type PerformanceHandler struct {
	service AvailabilityServiceInterface
}

func NewPerformanceHandler(s AvailabilityServiceInterface) *PerformanceHandler {
	return &PerformanceHandler{service: s}
}

type PerformanceSummaryResponse struct {
	ID               string    `json:"id"`
	ShowTime         time.Time `json:"show_time"`
	PlayID           string    `json:"play_id"`
	PlayTitle        string    `json:"play_title"`
	HallID           string    `json:"theatre_hall_id"`
	HallName         string    `json:"theatre_hall_name"`
	HallCapacity     int       `json:"theatre_hall_capacity"`
	TicketsAvailable int       `json:"tickets_available"`
}

type PerformanceDetailResponse struct {
	ID               string          `json:"id"`
	ShowTime         time.Time       `json:"show_time"`
	Play             PlayResponse    `json:"play"`
	TheatreHall      HallResponse    `json:"theatre_hall"`
	TakenPlaces      []PlaceResponse `json:"taken_places"`
	TicketsAvailable int             `json:"tickets_available"`
}

type AvailabilityResponse struct {
	PerformanceID    string `json:"performance_id"`
	TicketsAvailable int    `json:"tickets_available"`
}

// List godoc
// @Summary 公演一覧を取得
// @Description 空席数付きの公演一覧。play（カンマ区切りの演目ID）と date（YYYY-MM-DD）で絞り込める
// @Tags performances
// @Produce json
// @Param play query string false "演目ID（カンマ区切り）"
// @Param date query string false "上演日 YYYY-MM-DD"
// @Success 200 {array} PerformanceSummaryResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /performances [get]
func (h *PerformanceHandler) List(c echo.Context) error {
	filter, err := performance.ParseFilter(c.QueryParam("play"), c.QueryParam("date"))
	if err != nil {
		return err
	}
	summaries, err := h.service.ListPerformances(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	res := make([]PerformanceSummaryResponse, len(summaries))
	for i, s := range summaries {
		res[i] = PerformanceSummaryResponse{
			ID: s.ID, ShowTime: s.ShowTime,
			PlayID: s.PlayID, PlayTitle: s.PlayTitle,
			HallID: s.HallID, HallName: s.HallName, HallCapacity: s.HallCapacity,
			TicketsAvailable: s.TicketsAvailable,
		}
	}
	return c.JSON(http.StatusOK, res)
}

// GetByID godoc
// @Summary 公演詳細を取得
// @Description 予約済み座席と空席数を含む
// @Tags performances
// @Produce json
// @Param id path string true "公演ID"
// @Success 200 {object} PerformanceDetailResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /performances/{id} [get]
func (h *PerformanceHandler) GetByID(c echo.Context) error {
	d, err := h.service.GetPerformance(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	places := make([]PlaceResponse, len(d.TakenPlaces))
	for i, p := range d.TakenPlaces {
		places[i] = PlaceResponse{Row: p.Row, Seat: p.Seat}
	}
	p := d.Performance
	return c.JSON(http.StatusOK, PerformanceDetailResponse{
		ID:               p.ID,
		ShowTime:         p.ShowTime,
		Play:             toPlayResponse(p.Play),
		TheatreHall:      toHallResponse(p.Hall),
		TakenPlaces:      places,
		TicketsAvailable: d.TicketsAvailable,
	})
}

// Availability godoc
// @Summary 空席数を取得
// @Tags performances
// @Produce json
// @Param id path string true "公演ID"
// @Success 200 {object} AvailabilityResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /performances/{id}/availability [get]
func (h *PerformanceHandler) Availability(c echo.Context) error {
	id := c.Param("id")
	n, err := h.service.AvailableSeats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{PerformanceID: id, TicketsAvailable: n})
}
