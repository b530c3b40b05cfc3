package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/ticket"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    int            `json:"code,omitempty"`
	Details string         `json:"details,omitempty"`
	Seats   []ConflictSeat `json:"seats,omitempty"`
}

// ConflictSeat は既に予約されていた座席
type ConflictSeat struct {
	PerformanceID string `json:"performance_id"`
	Row           int    `json:"row"`
	Seat          int    `json:"seat"`
}

// StatusCode はエラーを HTTP ステータスに変換する
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	switch apperr.Kind(err) {
	case apperr.ErrValidation:
		return http.StatusBadRequest
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// ハンドラーが返したドメインエラーもここでステータスに変換する
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := StatusCode(err)
	resp := ErrorResponse{Code: code}

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		if m, ok := he.Message.(string); ok {
			resp.Error = m
		} else {
			resp.Error = http.StatusText(code)
		}
	case code >= 500:
		// 内部エラーの詳細は返さない
		resp.Error = "内部サーバーエラー"
	default:
		resp.Error = err.Error()
	}

	var conflict *ticket.ConflictError
	if errors.As(err, &conflict) {
		resp.Seats = make([]ConflictSeat, len(conflict.Seats))
		for i, s := range conflict.Seats {
			resp.Seats[i] = ConflictSeat{PerformanceID: s.PerformanceID, Row: s.Row, Seat: s.Seat}
		}
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.FromContext(c.Request().Context()).Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, resp)
	}
	if err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
