package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
)

// NewTestEcho はテスト用のEchoインスタンスを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	return e
}

// WithIdentity は認証済みの呼び出し元を設定するテスト用ミドルウェア
func WithIdentity(identity user.Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetIdentity(c, identity)
			return next(c)
		}
	}
}
