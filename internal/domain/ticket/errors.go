package ticket

import (
	"fmt"
	"strings"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/apperr"
)

// Ticket ドメインのエラー定義
var (
	ErrRowOutOfRange  = fmt.Errorf("%w: 行番号がホールの範囲外です", apperr.ErrValidation)
	ErrSeatOutOfRange = fmt.Errorf("%w: 座席番号がホールの範囲外です", apperr.ErrValidation)
	ErrDuplicateSeat  = fmt.Errorf("%w: 同じ座席が複数回指定されています", apperr.ErrValidation)
)

// ConflictError は確定済みの別予約が既に確保している座席を表す
type ConflictError struct {
	Seats []SeatRef
}

func (e *ConflictError) Error() string {
	refs := make([]string, len(e.Seats))
	for i, s := range e.Seats {
		refs[i] = s.String()
	}
	return "座席は既に予約されています: " + strings.Join(refs, ", ")
}

// Is は apperr.ErrConflict との比較に使われる
func (e *ConflictError) Is(target error) bool {
	return target == apperr.ErrConflict
}
