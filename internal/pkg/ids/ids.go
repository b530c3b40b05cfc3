// Package ids は外部から受け取った UUID の正規化を行う
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// Canonical は UUID を小文字・ハイフン区切りの標準表記にする
// 大文字、波括弧、ハイフンなし、urn:uuid: 形式も同じ値として扱う
func Canonical(id string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return u.String(), true
}

// CanonicalList は UUID のリストを正規化し、重複を取り除く
// 1つでも UUID でなければ、その値と false を返す
func CanonicalList(list []string) ([]string, string, bool) {
	if len(list) == 0 {
		return nil, "", true
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		id, ok := Canonical(raw)
		if !ok {
			return nil, raw, false
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, "", true
}
