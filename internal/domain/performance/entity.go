package performance

import (
	"fmt"
	"strings"
	"time"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/hall"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/play"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/pkg/ids"
)

// Performance は公演（ある演目のあるホールでの上演回）を表す
type Performance struct {
	ID        string
	PlayID    string
	HallID    string
	ShowTime  time.Time
	CreatedAt time.Time

	// GetByID で読み込まれる参照先
	Play *play.Play
	Hall *hall.TheatreHall
}

// NewPerformance は新しい公演を作成する
func NewPerformance(playID, hallID string, showTime time.Time) *Performance {
	return &Performance{
		PlayID:    playID,
		HallID:    hallID,
		ShowTime:  showTime,
		CreatedAt: time.Now(),
	}
}

// Validate は公演の検証を行う
func (p *Performance) Validate() error {
	if p.PlayID == "" {
		return ErrPlayIDRequired
	}
	if p.HallID == "" {
		return ErrHallIDRequired
	}
	if p.ShowTime.IsZero() {
		return ErrShowTimeRequired
	}
	return nil
}

// Summary は一覧表示用の公演情報。TicketsAvailable は取得時に集計される
type Summary struct {
	ID               string
	ShowTime         time.Time
	PlayID           string
	PlayTitle        string
	HallID           string
	HallName         string
	HallCapacity     int
	TicketsAvailable int
}

// Filter は公演一覧の絞り込み条件
type Filter struct {
	PlayIDs []string
	// Date は上演日（時刻部分は無視される）
	Date *time.Time
}

// ParseFilter はクエリ文字列から絞り込み条件を作る
// play はカンマ区切りの演目ID（標準表記にそろえる）、date は YYYY-MM-DD
func ParseFilter(playParam, dateParam string) (Filter, error) {
	var f Filter
	var raw []string
	for _, id := range strings.Split(playParam, ",") {
		if id = strings.TrimSpace(id); id != "" {
			raw = append(raw, id)
		}
	}
	playIDs, bad, ok := ids.CanonicalList(raw)
	if !ok {
		return Filter{}, fmt.Errorf("%w: %s", ErrInvalidPlayID, bad)
	}
	f.PlayIDs = playIDs
	if dateParam != "" {
		d, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %s", ErrInvalidDate, dateParam)
		}
		f.Date = &d
	}
	return f, nil
}

// Available は空席数を返す。結果は常に [0, capacity] に収まる
func Available(capacity, taken int) int {
	if capacity < 0 {
		capacity = 0
	}
	n := capacity - taken
	if n < 0 {
		return 0
	}
	if n > capacity {
		return capacity
	}
	return n
}
