package model

import "time"

// ExamResult is the one-shot outcome of a finished exam session.
// Invariant: CorrectCount + WrongCount + EmptyCount equals the number of
// questions the session was started with.
type ExamResult struct {
	ID           int64     `json:"id,omitempty"`
	UserID       int64     `json:"user_id"`
	CourseID     int64     `json:"course_id"`
	Score        int       `json:"score"`
	CorrectCount int       `json:"correct_answers"`
	WrongCount   int       `json:"wrong_answers"`
	EmptyCount   int       `json:"empty_answers"`
	CreatedAt    time.Time `json:"created_at"`
}
