package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          string    `bun:",pk" json:"id"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	AuthorID    string    `bun:",notnull" json:"author_id"`
	Title       string    `bun:",notnull" json:"title"`
	Description *string   `json:"description"`
}
