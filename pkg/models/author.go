package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID          string    `bun:",pk" json:"id"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	FirstName   string    `bun:",notnull" json:"first_name"`
	LastName    string    `bun:",notnull" json:"last_name"`
	DateOfBirth time.Time `bun:",notnull" json:"date_of_birth"`
	Genre       string    `bun:",notnull" json:"genre"`
	Books       []*Book   `bun:"rel:has-many,join:id=author_id" json:"books,omitempty"`
}

// Name is the display name.
func (a *Author) Name() string {
	return a.FirstName + " " + a.LastName
}

// AgeAt returns the author's age in whole years on the given day.
func (a *Author) AgeAt(now time.Time) int {
	age := now.Year() - a.DateOfBirth.Year()
	if now.Before(a.DateOfBirth.AddDate(age, 0, 0)) {
		age--
	}
	return age
}
