package model

// SelectAnswerRequest records an option choice for one question.
type SelectAnswerRequest struct {
	QuestionID int64  `json:"question_id" binding:"required"`
	OptionKey  string `json:"option_key" binding:"required,min=1,max=1"`
}

// ToggleFlagRequest flips the uncertainty flag on one question.
type ToggleFlagRequest struct {
	QuestionID int64 `json:"question_id" binding:"required"`
}

// NavigateRequest moves the session cursor. Index is absolute when present,
// otherwise Delta is relative to the current position.
type NavigateRequest struct {
	Index *int `json:"index,omitempty"`
	Delta int  `json:"delta,omitempty"`
}
