package domain

import (
	"errors"
	"time"
)

var (
	ErrBootcampNotFound = errors.New("bootcamp not found")
	ErrForbidden        = errors.New("access forbidden")
	// ErrOwnershipLimit is returned when a non-admin tries to create a second
	// bootcamp or course.
	ErrOwnershipLimit = errors.New("resource already created for this account")
	// ErrUpstream wraps failures from external collaborators (geocoder, store).
	ErrUpstream = errors.New("upstream service error")
	// ErrInvalidUpload is returned when a photo upload violates the MIME or
	// size policy.
	ErrInvalidUpload = errors.New("invalid upload")
)

// Location is a GeoJSON point with the formatted address it resolved from.
type Location struct {
	Type             string    `json:"type" bson:"type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"` // [lng, lat]
	FormattedAddress string    `json:"formatted_address,omitempty" bson:"formatted_address,omitempty"`
	City             string    `json:"city,omitempty" bson:"city,omitempty"`
	Zipcode          string    `json:"zipcode,omitempty" bson:"zipcode,omitempty"`
	Country          string    `json:"country,omitempty" bson:"country,omitempty"`
}

// Bootcamp is the root listing of the directory.
//
// AverageRating is derived from reviews and stays nil until the first review
// is written; the rating aggregator owns it from then on.
type Bootcamp struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	Location      *Location `json:"location,omitempty"`
	Careers       []string  `json:"careers"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"job_assistance"`
	JobGuarantee  bool      `json:"job_guarantee"`
	AcceptGi      bool      `json:"accept_gi"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	Photo         string    `json:"photo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
