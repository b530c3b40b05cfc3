package api

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seatRequest struct {
	PerformanceID string `json:"performance_id" validate:"required"`
	Row           int    `json:"row" validate:"required,min=1"`
}

type bookingRequest struct {
	Seats []seatRequest `json:"seats" validate:"required,min=1,dive"`
}

func TestCustomValidator(t *testing.T) {
	v := NewValidator()

	t.Run("有効なリクエスト", func(t *testing.T) {
		err := v.Validate(&bookingRequest{Seats: []seatRequest{{PerformanceID: "perf-1", Row: 1}}})
		assert.NoError(t, err)
	})

	t.Run("座席が空", func(t *testing.T) {
		err := v.Validate(&bookingRequest{})
		require.Error(t, err)

		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.Contains(t, he.Message, "seats")
	})

	t.Run("ネストしたフィールドはJSON名で報告される", func(t *testing.T) {
		err := v.Validate(&bookingRequest{Seats: []seatRequest{{Row: 1}}})
		require.Error(t, err)

		he := err.(*echo.HTTPError)
		assert.Contains(t, he.Message, "performance_id")
	})
}
