package websocket

import "github.com/kelasfokus/fokus-backend/internal/exam"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer   Action = "answer"
	ActionFlag     Action = "flag"
	ActionNavigate Action = "navigate"
	ActionFinish   Action = "finish"
	ActionPing     Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// AnswerRequest selects an option for a question.
type AnswerRequest struct {
	Action     Action `json:"action"`
	QuestionID int64  `json:"question_id"`
	OptionKey  string `json:"option_key"`
}

// FlagRequest toggles the review flag on a question.
type FlagRequest struct {
	Action     Action `json:"action"`
	QuestionID int64  `json:"question_id"`
}

// NavigateRequest moves the session cursor. Either an absolute index or a
// relative delta; index wins when both are present.
type NavigateRequest struct {
	Action Action `json:"action"`
	Index  *int   `json:"index,omitempty"`
	Delta  int    `json:"delta,omitempty"`
}

// FinishRequest ends the exam and triggers grading.
type FinishRequest struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventState    Event = "state"
	EventFinished Event = "finished"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// StateEvent carries the live session snapshot. Broadcast once per second
// and after every accepted action.
type StateEvent struct {
	Event Event      `json:"event"`
	State exam.State `json:"state"`
}

// FinishedEvent announces grading is complete.
type FinishedEvent struct {
	Event            Event  `json:"event"`
	Score            int    `json:"score"`
	CorrectCount     int    `json:"correct_count"`
	WrongCount       int    `json:"wrong_count"`
	EmptyCount       int    `json:"empty_count"`
	AutoFinished     bool   `json:"auto_finished"`
	SubmissionFailed bool   `json:"submission_failed"`
	Policy           string `json:"policy"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
