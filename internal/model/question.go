package model

import (
	"errors"
	"fmt"
)

// Option is one answer choice of a multiple-choice question. Keys are
// single letters (A-E) and unique within the question. An option must be
// renderable: text and image cannot both be absent.
type Option struct {
	Key      string  `json:"key"`
	Text     string  `json:"text,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// Question is a single multiple-choice exam question. Text may be empty for
// image-only questions.
type Question struct {
	ID          int64    `json:"id"`
	CourseID    int64    `json:"course_id"`
	Category    string   `json:"category,omitempty"`
	Text        string   `json:"question_text"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Options     []Option `json:"options"`
	CorrectKey  string   `json:"correct_answer"`
	Explanation string   `json:"explanation,omitempty"`
}

const (
	MinOptionsPerQuestion = 2
	MaxOptionsPerQuestion = 5
)

// Validate enforces the structural invariants of a question: 2-5 options,
// unique keys, every option renderable, and a correct key that matches one
// of the options.
func (q *Question) Validate() error {
	if len(q.Options) < MinOptionsPerQuestion || len(q.Options) > MaxOptionsPerQuestion {
		return fmt.Errorf("question must have between %d and %d options, got %d",
			MinOptionsPerQuestion, MaxOptionsPerQuestion, len(q.Options))
	}

	seen := make(map[string]bool, len(q.Options))
	correctFound := false
	for _, opt := range q.Options {
		if len(opt.Key) != 1 {
			return fmt.Errorf("option key %q must be a single character", opt.Key)
		}
		if seen[opt.Key] {
			return fmt.Errorf("duplicate option key %q", opt.Key)
		}
		seen[opt.Key] = true

		if opt.Text == "" && opt.ImageURL == nil {
			return fmt.Errorf("option %q has neither text nor image", opt.Key)
		}
		if opt.Key == q.CorrectKey {
			correctFound = true
		}
	}

	if !correctFound {
		return errors.New("correct_answer does not match any option key")
	}
	return nil
}

// HasOption reports whether key belongs to this question's option set.
func (q *Question) HasOption(key string) bool {
	for _, opt := range q.Options {
		if opt.Key == key {
			return true
		}
	}
	return false
}

// CreateQuestionRequest is the admin payload for adding a question.
type CreateQuestionRequest struct {
	Category    string   `json:"category" binding:"max=100"`
	Text        string   `json:"question_text" binding:"max=5000"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,url"`
	Options     []Option `json:"options" binding:"required,min=2,max=5"`
	CorrectKey  string   `json:"correct_answer" binding:"required,len=1"`
	Explanation string   `json:"explanation" binding:"max=10000"`
}
