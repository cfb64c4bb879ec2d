package domain

import (
	"errors"
	"time"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview maps the unique (bootcamp, user) index collision: one
	// review per user per bootcamp.
	ErrDuplicateReview = errors.New("review already submitted for this bootcamp")
)

const (
	MinRating = 1
	MaxRating = 10
)

// Review is a user rating of a bootcamp. Every successful write triggers a
// recomputation of the bootcamp's average rating.
type Review struct {
	ID         string    `json:"id"`
	BootcampID string    `json:"bootcamp"`
	UserID     string    `json:"user"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}
