package domain

import (
	"errors"
	"time"
)

var ErrCourseNotFound = errors.New("course not found")

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course belongs to exactly one bootcamp and records the user who added it.
type Course struct {
	ID                   string    `json:"id"`
	BootcampID           string    `json:"bootcamp"`
	UserID               string    `json:"user"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              float64   `json:"tuition"`
	MinimumSkill         string    `json:"minimum_skill"`
	ScholarshipAvailable bool      `json:"scholarship_available"`
	CreatedAt            time.Time `json:"created_at"`
}
