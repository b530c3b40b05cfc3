package reservation

import (
	"fmt"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
)

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound = fmt.Errorf("%w: 予約が見つかりません", apperr.ErrNotFound)
	ErrNotOwner            = fmt.Errorf("%w: 予約の所有者ではありません", apperr.ErrForbidden)
	ErrUserIDRequired      = fmt.Errorf("%w: ユーザーIDは必須です", apperr.ErrValidation)
	ErrTicketsRequired     = fmt.Errorf("%w: 座席を1つ以上指定してください", apperr.ErrValidation)
)
