package exam

import "errors"

// Domain errors surfaced by the session controller. These are typed outcomes
// for the caller to map onto API error codes; none of them is fatal.
var (
	// ErrNoQuestions is returned by Start when the course has an empty
	// question set. The session never enters IN_PROGRESS.
	ErrNoQuestions = errors.New("no questions available for this course")

	// ErrSessionFinished rejects mutations arriving after the session
	// reached its terminal phase.
	ErrSessionFinished = errors.New("exam session is already finished")

	// ErrUnknownQuestion rejects operations referencing a question id that
	// is not part of the session's question set.
	ErrUnknownQuestion = errors.New("question is not part of this session")

	// ErrInvalidSelection rejects an answer whose option key does not belong
	// to the question. The selection is never recorded.
	ErrInvalidSelection = errors.New("selected option does not belong to the question")

	// ErrNotFinished guards review access before the session is scored.
	ErrNotFinished = errors.New("exam session is not finished yet")
)
