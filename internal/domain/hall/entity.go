package hall

import "time"

// TheatreHall は劇場ホールを表す
type TheatreHall struct {
	ID         string
	Name       string
	Rows       int
	SeatsInRow int
	CreatedAt  time.Time
}

// NewTheatreHall は新しいホールを作成する
func NewTheatreHall(name string, rows, seatsInRow int) *TheatreHall {
	return &TheatreHall{
		Name:       name,
		Rows:       rows,
		SeatsInRow: seatsInRow,
		CreatedAt:  time.Now(),
	}
}

// Capacity は総座席数を返す
func (h *TheatreHall) Capacity() int {
	return h.Rows * h.SeatsInRow
}

// Contains は (row, seat) がホール内の座席かを返す
func (h *TheatreHall) Contains(row, seat int) bool {
	return row >= 1 && row <= h.Rows && seat >= 1 && seat <= h.SeatsInRow
}

// Validate はホールの検証を行う
func (h *TheatreHall) Validate() error {
	if h.Name == "" {
		return ErrHallNameRequired
	}
	if h.Rows <= 0 {
		return ErrInvalidRows
	}
	if h.SeatsInRow <= 0 {
		return ErrInvalidSeatsInRow
	}
	return nil
}
