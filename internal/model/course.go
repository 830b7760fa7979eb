package model

import "time"

// Course is a purchasable test-prep course: a set of study materials plus a
// timed question set.
type Course struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	DurationMinutes int       `json:"duration_minutes"`
	QuestionCount   int       `json:"question_count"`
	ImageURL        *string   `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateCourseRequest is the admin payload for creating a course.
type CreateCourseRequest struct {
	Title           string  `json:"title" binding:"required,min=3,max=200"`
	Slug            string  `json:"slug" binding:"required,min=3,max=100"`
	DurationMinutes int     `json:"duration_minutes" binding:"min=0,max=600"`
	ImageURL        *string `json:"image_url" binding:"omitempty,url"`
}

// UpdateCourseRequest is the admin payload for updating a course.
type UpdateCourseRequest struct {
	Title           string  `json:"title" binding:"required,min=3,max=200"`
	Slug            string  `json:"slug" binding:"required,min=3,max=100"`
	DurationMinutes int     `json:"duration_minutes" binding:"min=0,max=600"`
	ImageURL        *string `json:"image_url" binding:"omitempty,url"`
}
