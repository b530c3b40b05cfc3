package hall

import (
	"fmt"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
)

// Hall ドメインのエラー定義
var (
	ErrHallNotFound      = fmt.Errorf("%w: ホールが見つかりません", apperr.ErrNotFound)
	ErrHallNameRequired  = fmt.Errorf("%w: ホール名は必須です", apperr.ErrValidation)
	ErrInvalidRows       = fmt.Errorf("%w: 列数は1以上である必要があります", apperr.ErrValidation)
	ErrInvalidSeatsInRow = fmt.Errorf("%w: 1列あたりの座席数は1以上である必要があります", apperr.ErrValidation)
)
