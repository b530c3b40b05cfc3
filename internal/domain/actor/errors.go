package actor

import (
	"fmt"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
)

// Actor ドメインのエラー定義
var (
	ErrActorNotFound     = fmt.Errorf("%w: 俳優が見つかりません", apperr.ErrNotFound)
	ErrFirstNameRequired = fmt.Errorf("%w: 名は必須です", apperr.ErrValidation)
	ErrLastNameRequired  = fmt.Errorf("%w: 姓は必須です", apperr.ErrValidation)
)
