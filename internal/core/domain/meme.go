package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 300
)

var (
	ErrMemeNotFound = errors.New("meme not found")
	ErrNoMemes      = errors.New("no memes found")
)

// Meme is a stored image record.
type Meme struct {
	ID          int64     `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string    `json:"imageUrl" bson:"image_url"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// Validate checks the field rules applied to every new meme. Checks run in
// a fixed order so the first failing rule decides the message.
func (m *Meme) Validate() error {
	if m.Title == "" || m.ImageURL == "" {
		return NewValidationError("Title and imageUrl are required")
	}
	if utf8.RuneCountInString(m.Title) > MaxTitleLength {
		return NewValidationError("Title max length is 100")
	}
	if utf8.RuneCountInString(m.Description) > MaxDescriptionLength {
		return NewValidationError("Description max length is 300")
	}
	return nil
}
