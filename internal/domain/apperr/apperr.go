// Package apperr は呼び出し元に返すエラーの種別を定義する
//
// 各ドメインのエラーはいずれかの種別をラップするため、
// errors.Is で個別のエラーと種別の両方を判定できる。
package apperr

import "errors"

var (
	// ErrValidation はリクエスト不正（範囲外の座席、重複指定など）
	ErrValidation = errors.New("入力値が不正です")
	// ErrConflict は座席が既に他の予約で確保されていることを表す
	ErrConflict = errors.New("競合が発生しました")
	// ErrNotFound は参照先が存在しないことを表す
	ErrNotFound = errors.New("リソースが見つかりません")
	// ErrForbidden は操作する権限がないことを表す
	ErrForbidden = errors.New("権限がありません")
)

// Kind はエラーが属する種別を返す。どれにも該当しない場合は nil
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrForbidden} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
