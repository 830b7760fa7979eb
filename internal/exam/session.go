package exam

import (
	"context"
	"sync"
	"time"

	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/rs/zerolog"
)

// Phase enumerates the lifecycle states of a session. A session object only
// exists while IN_PROGRESS or after it finished; an empty question set never
// produces a session at all.
type Phase string

const (
	PhaseInProgress Phase = "IN_PROGRESS"
	PhaseFinished   Phase = "FINISHED"
	// PhaseAbandoned marks a session torn down before finishing (user
	// navigated away or restarted). No result is ever written for it.
	PhaseAbandoned Phase = "ABANDONED"
)

// ResultSink accepts the finalized result of a session. The controller calls
// Submit at most once per session, asynchronously; a failed submit is
// surfaced as a warning and never discards the locally computed result.
type ResultSink interface {
	Submit(ctx context.Context, result *model.ExamResult) error
}

// DefaultDuration applies when the course supplies no duration of its own.
const DefaultDuration = 1800 * time.Second

const submitTimeout = 10 * time.Second

// SessionConfig carries everything a session needs at start time.
type SessionConfig struct {
	UserID    int64
	CourseID  int64
	Questions []model.Question
	Duration  time.Duration
	Policy    ScoringPolicy
	Sink      ResultSink
	Log       zerolog.Logger

	// TickInterval overrides the wall-clock second for tests. Zero means
	// one second.
	TickInterval time.Duration
}

// Session owns one timed exam attempt: the immutable question set, the
// per-question answer and flag state, the countdown, and the one-shot
// scoring transition. All methods are safe for concurrent use; the
// IN_PROGRESS -> FINISHED transition is guarded so that a timer expiry
// racing a manual submit collapses into a single scoring pass and a single
// result submission.
type Session struct {
	userID   int64
	courseID int64

	mu           sync.Mutex
	questions    []model.Question
	answers      map[int64]string
	flags        map[int64]bool
	currentIndex int
	remaining    int
	phase        Phase
	result       *model.ExamResult
	submitErr    error

	policy ScoringPolicy
	sink   ResultSink
	log    zerolog.Logger

	tickInterval time.Duration
	stopTick     chan struct{}
	// submitDone is closed once the async result submission attempt has
	// completed (successfully or not).
	submitDone chan struct{}

	startedAt time.Time
}

// Start validates the question set, creates the session in IN_PROGRESS and
// begins the repeating one-second countdown. An empty question set yields
// ErrNoQuestions and no session. A non-positive duration falls back to
// DefaultDuration.
func Start(cfg SessionConfig) (*Session, error) {
	if len(cfg.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	duration := cfg.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	interval := cfg.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	policy := cfg.Policy
	if policy == nil {
		policy = FixedPoints{PerCorrect: 5}
	}

	s := &Session{
		userID:       cfg.UserID,
		courseID:     cfg.CourseID,
		questions:    cfg.Questions,
		answers:      make(map[int64]string),
		flags:        make(map[int64]bool),
		remaining:    int(duration / time.Second),
		phase:        PhaseInProgress,
		policy:       policy,
		sink:         cfg.Sink,
		log: cfg.Log.With().
			Int64("user_id", cfg.UserID).
			Int64("course_id", cfg.CourseID).
			Logger(),
		tickInterval: interval,
		stopTick:     make(chan struct{}),
		submitDone:   make(chan struct{}),
		startedAt:    time.Now(),
	}

	go s.run()

	s.log.Info().
		Int("questions", len(s.questions)).
		Int("duration_seconds", s.remaining).
		Str("scoring_policy", policy.Name()).
		Msg("Exam session started")

	return s, nil
}

// run drives the countdown until the session leaves IN_PROGRESS.
func (s *Session) run() {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopTick:
			return
		case <-ticker.C:
			if s.tick() {
				return
			}
		}
	}
}

// tick consumes one countdown second. Returns true once the session is no
// longer in progress so the ticker goroutine can exit. Reaching zero is the
// only path that finishes a session without user action; it runs to
// completion unconditionally.
func (s *Session) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress {
		return true
	}

	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.finishLocked(true)
		return true
	}
	return false
}

// SelectAnswer records the user's choice for a question, overwriting any
// prior choice. The option key must belong to the question; unknown keys are
// rejected and never stored. Selecting never moves the cursor.
func (s *Session) SelectAnswer(questionID int64, optionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress {
		return ErrSessionFinished
	}

	q := s.questionByID(questionID)
	if q == nil {
		return ErrUnknownQuestion
	}
	if !q.HasOption(optionKey) {
		s.log.Debug().
			Int64("question_id", questionID).
			Str("option_key", optionKey).
			Msg("Rejected answer for unknown option key")
		return ErrInvalidSelection
	}

	s.answers[questionID] = optionKey
	return nil
}

// ToggleFlag flips the "marked uncertain" flag for a question. Flags are
// navigation aids only and never influence scoring.
func (s *Session) ToggleFlag(questionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.questionByID(questionID) == nil {
		return ErrUnknownQuestion
	}
	s.flags[questionID] = !s.flags[questionID]
	return nil
}

// Goto jumps the cursor to an arbitrary question index (the navigation
// grid). Out-of-range targets are clamped rather than rejected; they signal
// caller misuse of navigation, not failure. Returns the resulting index.
func (s *Session) Goto(index int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress {
		return s.currentIndex
	}
	s.currentIndex = clamp(index, 0, len(s.questions)-1)
	return s.currentIndex
}

// Move shifts the cursor by delta (prev/next buttons), clamped to the valid
// range. Returns the resulting index.
func (s *Session) Move(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress {
		return s.currentIndex
	}
	s.currentIndex = clamp(s.currentIndex+delta, 0, len(s.questions)-1)
	return s.currentIndex
}

// Finish transitions the session to FINISHED, scores it and submits the
// result exactly once. A second call — from the timer racing a manual
// submit, or a double click — is a no-op returning the already computed
// result. auto marks timer-driven completion; the caller is expected to have
// confirmed manual submits, the auto path bypasses confirmation entirely.
func (s *Session) Finish(auto bool) (*model.ExamResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseAbandoned {
		return nil, ErrSessionFinished
	}
	if s.phase == PhaseFinished {
		return s.result, nil
	}

	s.finishLocked(auto)
	return s.result, nil
}

// finishLocked performs the single guarded IN_PROGRESS -> FINISHED
// transition: stop the countdown, tally, score, and hand the result to the
// sink asynchronously. Callers must hold s.mu and have verified the phase.
func (s *Session) finishLocked(auto bool) {
	s.phase = PhaseFinished
	close(s.stopTick)

	var correct, wrong, empty int
	for i := range s.questions {
		q := &s.questions[i]
		ans, ok := s.answers[q.ID]
		switch {
		case !ok:
			empty++
		case ans == q.CorrectKey:
			correct++
		default:
			wrong++
		}
	}

	s.result = &model.ExamResult{
		UserID:       s.userID,
		CourseID:     s.courseID,
		Score:        s.policy.Score(correct, len(s.questions)),
		CorrectCount: correct,
		WrongCount:   wrong,
		EmptyCount:   empty,
		CreatedAt:    time.Now(),
	}

	s.log.Info().
		Bool("auto", auto).
		Int("score", s.result.Score).
		Int("correct", correct).
		Int("wrong", wrong).
		Int("empty", empty).
		Msg("Exam session finished")

	// Fire-and-forget: showing the score never blocks on the sink. A failed
	// write is logged and recorded; the local result stays viewable.
	result := s.result
	go func() {
		defer close(s.submitDone)

		if s.sink == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		if err := s.sink.Submit(ctx, result); err != nil {
			s.log.Warn().Err(err).Msg("Result submission failed, score kept locally")
			s.mu.Lock()
			s.submitErr = err
			s.mu.Unlock()
		}
	}()
}

// Abandon tears the session down without scoring. Used when the user leaves
// the exam or restarts; an accepted, non-erroneous outcome with no result
// recorded.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseInProgress {
		return
	}
	s.phase = PhaseAbandoned
	close(s.stopTick)
	s.log.Info().Msg("Exam session abandoned")
}

// State is a point-in-time snapshot safe to hand to transports.
type State struct {
	CourseID         int64            `json:"course_id"`
	Phase            Phase            `json:"phase"`
	CurrentIndex     int              `json:"current_index"`
	RemainingSeconds int              `json:"remaining_seconds"`
	TotalQuestions   int              `json:"total_questions"`
	Answers          map[int64]string `json:"answers"`
	Flags            map[int64]bool   `json:"flags"`
}

// Snapshot copies the mutable session state under the lock.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[int64]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	flags := make(map[int64]bool, len(s.flags))
	for k, v := range s.flags {
		flags[k] = v
	}

	return State{
		CourseID:         s.courseID,
		Phase:            s.phase,
		CurrentIndex:     s.currentIndex,
		RemainingSeconds: s.remaining,
		TotalQuestions:   len(s.questions),
		Answers:          answers,
		Flags:            flags,
	}
}

// PaperQuestion is a question as served to the client during the exam:
// the correct key and explanation are stripped.
type PaperQuestion struct {
	ID       int64          `json:"id"`
	Category string         `json:"category,omitempty"`
	Text     string         `json:"question_text"`
	ImageURL *string        `json:"image_url,omitempty"`
	Options  []model.Option `json:"options"`
}

// Paper returns the sanitized question set in session order.
func (s *Session) Paper() []PaperQuestion {
	paper := make([]PaperQuestion, len(s.questions))
	for i := range s.questions {
		q := &s.questions[i]
		paper[i] = PaperQuestion{
			ID:       q.ID,
			Category: q.Category,
			Text:     q.Text,
			ImageURL: q.ImageURL,
			Options:  q.Options,
		}
	}
	return paper
}

// ReviewItem pairs a question with the user's stored answer for the
// post-exam review screen.
type ReviewItem struct {
	Question   model.Question `json:"question"`
	UserAnswer string         `json:"user_answer,omitempty"`
	Answered   bool           `json:"answered"`
	Correct    bool           `json:"correct"`
}

// Review exposes the full question set in read-only form after the session
// finished: the stored answer (or none), the correct key and the
// explanation. Returns ErrNotFinished while the exam is still running.
func (s *Session) Review() ([]ReviewItem, *model.ExamResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFinished {
		return nil, nil, ErrNotFinished
	}

	items := make([]ReviewItem, len(s.questions))
	for i := range s.questions {
		q := s.questions[i]
		ans, ok := s.answers[q.ID]
		items[i] = ReviewItem{
			Question:   q,
			UserAnswer: ans,
			Answered:   ok,
			Correct:    ok && ans == q.CorrectKey,
		}
	}
	return items, s.result, nil
}

// Result returns the computed result once the session finished.
func (s *Session) Result() (*model.ExamResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseFinished {
		return nil, ErrNotFinished
	}
	return s.result, nil
}

// SubmissionFailed reports whether the one-shot result submission is known
// to have failed. Non-fatal: the score remains viewable either way.
func (s *Session) SubmissionFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitErr != nil
}

// Policy returns the scoring policy the session was started with.
func (s *Session) Policy() ScoringPolicy {
	return s.policy
}

// PhaseNow returns the current phase.
func (s *Session) PhaseNow() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Remaining returns the countdown in seconds.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

func (s *Session) questionByID(id int64) *model.Question {
	for i := range s.questions {
		if s.questions[i].ID == id {
			return &s.questions[i]
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
