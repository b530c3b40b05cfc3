package play

import (
	"fmt"
	"strings"
	"time"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/actor"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/genre"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/ids"
)

// Play は演目を表す
type Play struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time

	// 一覧と詳細で読み込まれるジャンルと出演者
	Genres []*genre.Genre
	Actors []*actor.Actor
}

// NewPlay は新しい演目を作成する
func NewPlay(title, description string) *Play {
	return &Play{
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

// Validate は演目の検証を行う
func (p *Play) Validate() error {
	if p.Title == "" {
		return ErrPlayTitleRequired
	}
	return nil
}

// GenreIDs は紐づくジャンルのIDを返す
func (p *Play) GenreIDs() []string {
	out := make([]string, len(p.Genres))
	for i, g := range p.Genres {
		out[i] = g.ID
	}
	return out
}

// ActorIDs は紐づく俳優のIDを返す
func (p *Play) ActorIDs() []string {
	out := make([]string, len(p.Actors))
	for i, a := range p.Actors {
		out[i] = a.ID
	}
	return out
}

// Filter は演目一覧の絞り込み条件
// 同じ項目内のIDはいずれかに一致すればよく、項目同士は AND で結ぶ
type Filter struct {
	Title    string
	ActorIDs []string
	GenreIDs []string
}

// ParseFilter はクエリ文字列から絞り込み条件を作る
// title は部分一致（大文字小文字を区別しない）、actors と genres はカンマ区切りのID
func ParseFilter(title, actorsParam, genresParam string) (Filter, error) {
	f := Filter{Title: strings.TrimSpace(title)}

	actorIDs, err := parseIDList("actors", actorsParam)
	if err != nil {
		return Filter{}, err
	}
	genreIDs, err := parseIDList("genres", genresParam)
	if err != nil {
		return Filter{}, err
	}
	f.ActorIDs, f.GenreIDs = actorIDs, genreIDs
	return f, nil
}

func parseIDList(name, param string) ([]string, error) {
	var raw []string
	for _, id := range strings.Split(param, ",") {
		if id = strings.TrimSpace(id); id != "" {
			raw = append(raw, id)
		}
	}
	list, bad, ok := ids.CanonicalList(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s=%s", ErrInvalidFilterID, name, bad)
	}
	return list, nil
}
