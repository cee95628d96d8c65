package content

import (
	"context"
	"errors"
)

// Item is a piece of editorial content addressed by slug. The membership
// core only reads items to build display data; membership decisions never
// depend on content.
type Item struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Repository is a read-only keyed lookup of editorial content.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*Item, error)
}

var (
	ErrItemNotFound = errors.New("content: item not found")
	ErrMissingSlug  = errors.New("content: slug is required")
)
