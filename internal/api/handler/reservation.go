package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/application"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/reservation"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

// TicketRequest は予約する1座席。row/seat の範囲はホールに対して検証される
type TicketRequest struct {
	PerformanceID string `json:"performance_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Row           int    `json:"row" example:"1"`
	Seat          int    `json:"seat" example:"5"`
}

type CreateReservationRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}

type TicketResponse struct {
	ID            string `json:"id"`
	PerformanceID string `json:"performance_id"`
	Row           int    `json:"row"`
	Seat          int    `json:"seat"`
}

type ReservationResponse struct {
	ID        string           `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID    string           `json:"user_id" example:"user-123"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

// ReservationListResponse は予約一覧の1ページ
type ReservationListResponse struct {
	Count    int                   `json:"count"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Results  []ReservationResponse `json:"results"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	tickets := make([]TicketResponse, len(r.Tickets))
	for i, t := range r.Tickets {
		tickets[i] = TicketResponse{ID: t.ID, PerformanceID: t.PerformanceID, Row: t.Row, Seat: t.Seat}
	}
	return ReservationResponse{ID: r.ID, UserID: r.UserID, CreatedAt: r.CreatedAt, Tickets: tickets}
}

// Create godoc
// @Summary 予約を作成
// @Description 指定した座席をすべて確保する。1席でも取れなければ何も予約されない
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReservationRequest true "予約する座席"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "公演が存在しない"
// @Failure 409 {object} api.ErrorResponse "座席が既に予約済み"
// @Failure 429 {object} api.ErrorResponse
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	seats := make([]application.SeatRequest, len(req.Tickets))
	for i, t := range req.Tickets {
		seats[i] = application.SeatRequest{PerformanceID: t.PerformanceID, Row: t.Row, Seat: t.Seat}
	}
	r, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		Identity: who, Seats: seats,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 本人または管理者のみ取得できる
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 403 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	r, err := h.service.GetReservation(c.Request().Context(), c.Param("id"), who)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// List godoc
// @Summary 自分の予約一覧を取得
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param page query int false "ページ番号" default(1)
// @Param page_size query int false "1ページの件数（最大100）" default(10)
// @Success 200 {object} ReservationListResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	page, err := intQueryParam(c, "page")
	if err != nil {
		return err
	}
	pageSize, err := intQueryParam(c, "page_size")
	if err != nil {
		return err
	}
	result, err := h.service.ListUserReservations(c.Request().Context(), who, page, pageSize)
	if err != nil {
		return err
	}
	res := ReservationListResponse{
		Count:    result.Count,
		Page:     result.Page,
		PageSize: result.PageSize,
		Results:  make([]ReservationResponse, len(result.Results)),
	}
	for i, r := range result.Results {
		res.Results[i] = toReservationResponse(r)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete godoc
// @Summary 予約を削除
// @Description 予約とそのチケットを削除し、座席を解放する
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "予約ID"
// @Success 204
// @Failure 403 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c echo.Context) error {
	who, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteReservation(c.Request().Context(), c.Param("id"), who); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// intQueryParam は整数のクエリパラメータを返す。未指定なら 0
func intQueryParam(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" は整数で指定してください")
	}
	return n, nil
}
