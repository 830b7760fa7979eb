package exam

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/rs/zerolog"
)

func testQuestions() []model.Question {
	return []model.Question{
		{
			ID:   1,
			Text: "2 + 2 = ?",
			Options: []model.Option{
				{Key: "a", Text: "3"},
				{Key: "b", Text: "4"},
				{Key: "c", Text: "5"},
			},
			CorrectKey: "b",
		},
		{
			ID:   2,
			Text: "Capital of France?",
			Options: []model.Option{
				{Key: "a", Text: "Paris"},
				{Key: "b", Text: "Lyon"},
			},
			CorrectKey: "a",
		},
		{
			ID:   3,
			Text: "Largest planet?",
			Options: []model.Option{
				{Key: "a", Text: "Mars"},
				{Key: "b", Text: "Venus"},
				{Key: "c", Text: "Jupiter"},
			},
			CorrectKey: "c",
		},
	}
}

// countingSink records every submission it receives.
type countingSink struct {
	calls   atomic.Int32
	lastRes atomic.Pointer[model.ExamResult]
	err     error
}

func (s *countingSink) Submit(_ context.Context, result *model.ExamResult) error {
	s.calls.Add(1)
	s.lastRes.Store(result)
	return s.err
}

func startTestSession(t *testing.T, cfg SessionConfig) *Session {
	t.Helper()
	if cfg.Questions == nil {
		cfg.Questions = testQuestions()
	}
	if cfg.Duration == 0 {
		cfg.Duration = time.Hour
	}
	cfg.Log = zerolog.Nop()
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(s.Abandon)
	return s
}

func waitSubmit(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.submitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("result submission did not complete")
	}
}

func TestStartEmptyQuestionSet(t *testing.T) {
	s, err := Start(SessionConfig{Questions: nil, Log: zerolog.Nop()})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
	if s != nil {
		t.Fatal("expected no session for an empty question set")
	}
}

func TestManualFinishScoresAnswered(t *testing.T) {
	sink := &countingSink{}
	s := startTestSession(t, SessionConfig{UserID: 7, CourseID: 3, Sink: sink})

	// q1 correct, q2 wrong, q3 left empty.
	if err := s.SelectAnswer(1, "b"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := s.SelectAnswer(2, "b"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	result, err := s.Finish(false)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if result.CorrectCount != 1 || result.WrongCount != 1 || result.EmptyCount != 1 {
		t.Fatalf("tally = %d/%d/%d, want 1/1/1",
			result.CorrectCount, result.WrongCount, result.EmptyCount)
	}
	if result.Score != 5 {
		t.Fatalf("score = %d, want 5 (one correct at 5 points)", result.Score)
	}
	if result.UserID != 7 || result.CourseID != 3 {
		t.Fatalf("result identity = %d/%d, want 7/3", result.UserID, result.CourseID)
	}

	waitSubmit(t, s)
	if got := sink.calls.Load(); got != 1 {
		t.Fatalf("sink calls = %d, want 1", got)
	}
}

func TestReSelectionOverwrites(t *testing.T) {
	s := startTestSession(t, SessionConfig{})

	if err := s.SelectAnswer(1, "a"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := s.SelectAnswer(1, "b"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	state := s.Snapshot()
	if state.Answers[1] != "b" {
		t.Fatalf("answer = %q, want %q", state.Answers[1], "b")
	}

	result, _ := s.Finish(false)
	if result.CorrectCount != 1 {
		t.Fatalf("correct = %d, want 1 (last selection wins)", result.CorrectCount)
	}
}

func TestSelectAnswerRejectsForeignOptionKey(t *testing.T) {
	s := startTestSession(t, SessionConfig{})

	if err := s.SelectAnswer(2, "c"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("err = %v, want ErrInvalidSelection", err)
	}
	if err := s.SelectAnswer(99, "a"); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("err = %v, want ErrUnknownQuestion", err)
	}

	if got := len(s.Snapshot().Answers); got != 0 {
		t.Fatalf("stored answers = %d, want 0 after rejections", got)
	}
}

func TestSelectAnswerAfterFinish(t *testing.T) {
	s := startTestSession(t, SessionConfig{})
	s.Finish(false)

	if err := s.SelectAnswer(1, "b"); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("err = %v, want ErrSessionFinished", err)
	}
}

func TestNavigationClamps(t *testing.T) {
	s := startTestSession(t, SessionConfig{})

	if idx := s.Goto(99); idx != 2 {
		t.Fatalf("Goto(99) = %d, want 2", idx)
	}
	if idx := s.Goto(-5); idx != 0 {
		t.Fatalf("Goto(-5) = %d, want 0", idx)
	}
	if idx := s.Move(1); idx != 1 {
		t.Fatalf("Move(+1) = %d, want 1", idx)
	}
	if idx := s.Move(-10); idx != 0 {
		t.Fatalf("Move(-10) = %d, want 0", idx)
	}

	// Navigation freezes once finished.
	s.Finish(false)
	if idx := s.Goto(2); idx != 0 {
		t.Fatalf("Goto after finish = %d, want cursor unchanged at 0", idx)
	}
}

func TestToggleFlag(t *testing.T) {
	s := startTestSession(t, SessionConfig{})

	if err := s.ToggleFlag(2); err != nil {
		t.Fatalf("ToggleFlag: %v", err)
	}
	if !s.Snapshot().Flags[2] {
		t.Fatal("flag not set")
	}
	if err := s.ToggleFlag(2); err != nil {
		t.Fatalf("ToggleFlag: %v", err)
	}
	if s.Snapshot().Flags[2] {
		t.Fatal("flag not cleared on second toggle")
	}
	if err := s.ToggleFlag(42); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("err = %v, want ErrUnknownQuestion", err)
	}
}

func TestCountdownAutoFinish(t *testing.T) {
	sink := &countingSink{}
	s := startTestSession(t, SessionConfig{
		Sink:         sink,
		Duration:     3 * time.Second,
		TickInterval: 5 * time.Millisecond,
	})
	s.SelectAnswer(1, "b")

	deadline := time.After(2 * time.Second)
	for s.PhaseNow() != PhaseFinished {
		select {
		case <-deadline:
			t.Fatal("session did not auto-finish")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if got := s.Remaining(); got != 0 {
		t.Fatalf("remaining = %d, want 0 after expiry", got)
	}

	result, err := s.Result()
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if result.CorrectCount != 1 || result.EmptyCount != 2 {
		t.Fatalf("tally = %d correct / %d empty, want 1/2", result.CorrectCount, result.EmptyCount)
	}

	waitSubmit(t, s)
	if got := sink.calls.Load(); got != 1 {
		t.Fatalf("sink calls = %d, want 1", got)
	}
}

func TestDoubleFinishSubmitsOnce(t *testing.T) {
	sink := &countingSink{}
	s := startTestSession(t, SessionConfig{Sink: sink})
	s.SelectAnswer(1, "b")

	first, err := s.Finish(false)
	if err != nil {
		t.Fatalf("first Finish: %v", err)
	}
	second, err := s.Finish(false)
	if err != nil {
		t.Fatalf("second Finish: %v", err)
	}
	if first != second {
		t.Fatal("second Finish returned a different result")
	}

	waitSubmit(t, s)
	// Give a hypothetical duplicate submission time to land.
	time.Sleep(20 * time.Millisecond)
	if got := sink.calls.Load(); got != 1 {
		t.Fatalf("sink calls = %d, want exactly 1", got)
	}
}

func TestFinishRacingTimer(t *testing.T) {
	sink := &countingSink{}
	s := startTestSession(t, SessionConfig{
		Sink:         sink,
		Duration:     2 * time.Second,
		TickInterval: time.Millisecond,
	})

	// Hammer Finish while the fast ticker drains the countdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			s.Finish(false)
		}
	}()
	<-done

	waitSubmit(t, s)
	time.Sleep(20 * time.Millisecond)
	if got := sink.calls.Load(); got != 1 {
		t.Fatalf("sink calls = %d, want exactly 1 despite the race", got)
	}
}

func TestSubmissionFailureKeepsLocalResult(t *testing.T) {
	sink := &countingSink{err: errors.New("queue unavailable")}
	s := startTestSession(t, SessionConfig{Sink: sink})
	s.SelectAnswer(1, "b")

	result, err := s.Finish(false)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	waitSubmit(t, s)

	if !s.SubmissionFailed() {
		t.Fatal("SubmissionFailed() = false after sink error")
	}
	if result.Score != 5 {
		t.Fatalf("score = %d, want 5 kept locally", result.Score)
	}
	if _, _, err := s.Review(); err != nil {
		t.Fatalf("Review after failed submission: %v", err)
	}
}

func TestAbandonRecordsNothing(t *testing.T) {
	sink := &countingSink{}
	s := startTestSession(t, SessionConfig{Sink: sink})
	s.SelectAnswer(1, "b")

	s.Abandon()
	if s.PhaseNow() != PhaseAbandoned {
		t.Fatalf("phase = %s, want ABANDONED", s.PhaseNow())
	}

	if _, err := s.Finish(false); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("Finish after abandon: err = %v, want ErrSessionFinished", err)
	}
	time.Sleep(20 * time.Millisecond)
	if got := sink.calls.Load(); got != 0 {
		t.Fatalf("sink calls = %d, want 0 for an abandoned session", got)
	}
}

func TestPaperStripsAnswerKey(t *testing.T) {
	s := startTestSession(t, SessionConfig{})

	paper := s.Paper()
	if len(paper) != 3 {
		t.Fatalf("paper length = %d, want 3", len(paper))
	}
	for _, q := range paper {
		if len(q.Options) == 0 {
			t.Fatalf("question %d lost its options", q.ID)
		}
	}
}

func TestReviewOnlyAfterFinish(t *testing.T) {
	s := startTestSession(t, SessionConfig{})
	s.SelectAnswer(1, "b")
	s.SelectAnswer(2, "b")

	if _, _, err := s.Review(); !errors.Is(err, ErrNotFinished) {
		t.Fatalf("Review while running: err = %v, want ErrNotFinished", err)
	}

	s.Finish(false)
	items, result, err := s.Review()
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("review items = %d, want 3", len(items))
	}
	if !items[0].Correct || !items[0].Answered {
		t.Fatal("q1 should be answered and correct")
	}
	if items[1].Correct || !items[1].Answered {
		t.Fatal("q2 should be answered and wrong")
	}
	if items[2].Answered {
		t.Fatal("q3 should be unanswered")
	}
	if items[2].Question.CorrectKey == "" {
		t.Fatal("review must expose the correct key")
	}
	if result == nil || result.EmptyCount != 1 {
		t.Fatalf("review result = %+v, want 1 empty", result)
	}
}

func TestFlagsNeverAffectScore(t *testing.T) {
	s := startTestSession(t, SessionConfig{})
	s.SelectAnswer(1, "b")
	s.ToggleFlag(1)
	s.ToggleFlag(3)

	result, _ := s.Finish(false)
	if result.CorrectCount != 1 || result.EmptyCount != 2 {
		t.Fatalf("tally = %d/%d empty, flags leaked into scoring",
			result.CorrectCount, result.EmptyCount)
	}
}
