package performance

import (
	"fmt"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
)

// Performance ドメインのエラー定義
var (
	ErrPerformanceNotFound = fmt.Errorf("%w: 公演が見つかりません", apperr.ErrNotFound)
	ErrPlayIDRequired      = fmt.Errorf("%w: 演目IDは必須です", apperr.ErrValidation)
	ErrHallIDRequired      = fmt.Errorf("%w: ホールIDは必須です", apperr.ErrValidation)
	ErrShowTimeRequired    = fmt.Errorf("%w: 上演日時は必須です", apperr.ErrValidation)
	ErrInvalidDate         = fmt.Errorf("%w: 日付は YYYY-MM-DD 形式で指定してください", apperr.ErrValidation)
	ErrInvalidPlayID       = fmt.Errorf("%w: 演目IDはUUIDで指定してください", apperr.ErrValidation)
)
