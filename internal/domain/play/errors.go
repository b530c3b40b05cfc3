package play

import (
	"fmt"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
)

// Play ドメインのエラー定義
var (
	ErrPlayNotFound      = fmt.Errorf("%w: 演目が見つかりません", apperr.ErrNotFound)
	ErrPlayTitleRequired = fmt.Errorf("%w: 演目名は必須です", apperr.ErrValidation)
	ErrInvalidFilterID   = fmt.Errorf("%w: 絞り込みのIDはUUIDで指定してください", apperr.ErrValidation)
)
