package genre

import (
	"strings"
	"time"
)

// Genre は演目のジャンルを表す
type Genre struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewGenre は新しいジャンルを作成する
func NewGenre(name string) *Genre {
	return &Genre{
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
}

// Validate はジャンルの検証を行う
func (g *Genre) Validate() error {
	if g.Name == "" {
		return ErrGenreNameRequired
	}
	return nil
}
