package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kelasfokus/fokus-backend/internal/config"
	"github.com/kelasfokus/fokus-backend/internal/exam"
	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/rs/zerolog"
)

type stubCourseStore struct {
	course *model.Course
	err    error
}

func (s *stubCourseStore) GetByID(context.Context, int64) (*model.Course, error) {
	return s.course, s.err
}

type stubQuestionStore struct {
	questions []model.Question
}

func (s *stubQuestionStore) ListByCourse(context.Context, int64) ([]model.Question, error) {
	return s.questions, nil
}

type stubAccess struct {
	full bool
}

func (s *stubAccess) IsFullAccess(context.Context, int64) bool { return s.full }

func examTestConfig() *config.Config {
	return &config.Config{
		DefaultExamDuration: 1800 * time.Second,
		TrialQuestionLimit:  5,
		ScoringPolicy:       exam.PolicyFixedPoints,
		PointsPerCorrect:    5,
	}
}

func makeQuestions(n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			ID:   int64(i + 1),
			Text: "q",
			Options: []model.Option{
				{Key: "a", Text: "yes"},
				{Key: "b", Text: "no"},
			},
			CorrectKey: "a",
		}
	}
	return questions
}

func newTestExamService(t *testing.T, courses *stubCourseStore, questions *stubQuestionStore, access *stubAccess) *ExamService {
	t.Helper()
	svc, err := NewExamService(examTestConfig(), courses, questions, access, nil, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewExamService: %v", err)
	}
	return svc
}

func TestStartSessionTrialTruncation(t *testing.T) {
	svc := newTestExamService(t,
		&stubCourseStore{course: &model.Course{ID: 1, DurationMinutes: 30}},
		&stubQuestionStore{questions: makeQuestions(12)},
		&stubAccess{full: false},
	)

	session, trial, err := svc.StartSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	defer session.Abandon()

	if !trial {
		t.Fatal("expected trial truncation for a free account")
	}
	if got := session.Snapshot().TotalQuestions; got != 5 {
		t.Fatalf("questions = %d, want trial limit of 5", got)
	}
	// The trial prefix keeps the original order.
	if paper := session.Paper(); paper[0].ID != 1 || paper[4].ID != 5 {
		t.Fatal("trial subset is not the deterministic prefix")
	}
}

func TestStartSessionFullAccessKeepsAll(t *testing.T) {
	svc := newTestExamService(t,
		&stubCourseStore{course: &model.Course{ID: 1, DurationMinutes: 30}},
		&stubQuestionStore{questions: makeQuestions(12)},
		&stubAccess{full: true},
	)

	session, trial, err := svc.StartSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	defer session.Abandon()

	if trial {
		t.Fatal("premium account must not be truncated")
	}
	if got := session.Snapshot().TotalQuestions; got != 12 {
		t.Fatalf("questions = %d, want 12", got)
	}
}

func TestStartSessionSmallSetNotMarkedTrial(t *testing.T) {
	svc := newTestExamService(t,
		&stubCourseStore{course: &model.Course{ID: 1, DurationMinutes: 30}},
		&stubQuestionStore{questions: makeQuestions(3)},
		&stubAccess{full: false},
	)

	session, trial, err := svc.StartSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	defer session.Abandon()

	if trial {
		t.Fatal("a set at or under the limit is served whole, not as a trial")
	}
	if got := session.Snapshot().TotalQuestions; got != 3 {
		t.Fatalf("questions = %d, want 3", got)
	}
}

func TestStartSessionEmptyCourse(t *testing.T) {
	svc := newTestExamService(t,
		&stubCourseStore{course: &model.Course{ID: 1}},
		&stubQuestionStore{questions: nil},
		&stubAccess{full: true},
	)

	_, _, err := svc.StartSession(context.Background(), 1, 1)
	if !errors.Is(err, exam.ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
	if _, err := svc.GetSession(1, 1); !errors.Is(err, ErrNoActiveSession) {
		t.Fatal("no session must be registered for an empty course")
	}
}

func TestStartSessionDurationFallback(t *testing.T) {
	svc := newTestExamService(t,
		&stubCourseStore{course: &model.Course{ID: 1, DurationMinutes: 0}},
		&stubQuestionStore{questions: makeQuestions(2)},
		&stubAccess{full: true},
	)

	session, _, err := svc.StartSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	defer session.Abandon()

	if got := session.Remaining(); got != 1800 {
		t.Fatalf("remaining = %d, want the 1800s default", got)
	}
}

func TestStartSessionReplacesPrevious(t *testing.T) {
	svc := newTestExamService(t,
		&stubCourseStore{course: &model.Course{ID: 1, DurationMinutes: 30}},
		&stubQuestionStore{questions: makeQuestions(2)},
		&stubAccess{full: true},
	)

	first, _, err := svc.StartSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("first StartSession: %v", err)
	}
	second, _, err := svc.StartSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("second StartSession: %v", err)
	}
	defer second.Abandon()

	if first.PhaseNow() != exam.PhaseAbandoned {
		t.Fatal("restart must abandon the previous attempt")
	}
	got, err := svc.GetSession(1, 1)
	if err != nil || got != second {
		t.Fatal("GetSession must return the fresh attempt")
	}
}

func TestNewExamServiceRejectsUnknownPolicy(t *testing.T) {
	cfg := examTestConfig()
	cfg.ScoringPolicy = "bogus"
	if _, err := NewExamService(cfg, &stubCourseStore{}, &stubQuestionStore{}, &stubAccess{}, nil, nil, zerolog.Nop()); err == nil {
		t.Fatal("unknown scoring policy must fail fast")
	}
}

func TestAbandonSession(t *testing.T) {
	svc := newTestExamService(t,
		&stubCourseStore{course: &model.Course{ID: 1, DurationMinutes: 30}},
		&stubQuestionStore{questions: makeQuestions(2)},
		&stubAccess{full: true},
	)

	session, _, err := svc.StartSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	svc.AbandonSession(1, 1)
	if session.PhaseNow() != exam.PhaseAbandoned {
		t.Fatal("AbandonSession must abandon the live session")
	}
	if _, err := svc.GetSession(1, 1); !errors.Is(err, ErrNoActiveSession) {
		t.Fatal("session must be gone after abandon")
	}
}
