package actor

import (
	"strings"
	"time"
)

// Actor は演目に出演する俳優を表す
type Actor struct {
	ID        string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// NewActor は新しい俳優を作成する
func NewActor(firstName, lastName string) *Actor {
	return &Actor{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		CreatedAt: time.Now(),
	}
}

// FullName は「名 姓」の順で氏名を返す
func (a *Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Validate は俳優の検証を行う
func (a *Actor) Validate() error {
	if a.FirstName == "" {
		return ErrFirstNameRequired
	}
	if a.LastName == "" {
		return ErrLastNameRequired
	}
	return nil
}
