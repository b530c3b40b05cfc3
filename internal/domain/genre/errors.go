package genre

import (
	"fmt"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
)

// Genre ドメインのエラー定義
var (
	ErrGenreNotFound     = fmt.Errorf("%w: ジャンルが見つかりません", apperr.ErrNotFound)
	ErrGenreNameRequired = fmt.Errorf("%w: ジャンル名は必須です", apperr.ErrValidation)
	ErrGenreExists       = fmt.Errorf("%w: 同じ名前のジャンルが既に存在します", apperr.ErrConflict)
)
