package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kelasfokus/fokus-backend/internal/config"
	"github.com/kelasfokus/fokus-backend/internal/exam"
	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrNoActiveSession is returned when a user operates on a course they have
// no live session for.
var ErrNoActiveSession = errors.New("no active exam session for this course")

// CourseStore yields course metadata (including the exam duration source).
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*model.Course, error)
}

// QuestionStore yields the ordered question set for a course. Order must be
// stable so navigation is reproducible within a session.
type QuestionStore interface {
	ListByCourse(ctx context.Context, courseID int64) ([]model.Question, error)
}

// AccessChecker answers the full-vs-trial entitlement question.
type AccessChecker interface {
	IsFullAccess(ctx context.Context, userID int64) bool
}

// ExamService orchestrates exam attempts: it assembles the question set
// (applying trial truncation for free accounts), resolves the duration, and
// hands everything to the session controller. The controller itself is
// unaware of entitlement.
type ExamService struct {
	courses      CourseStore
	questions    QuestionStore
	entitlements AccessChecker
	resultRepo   *repository.ResultRepository
	manager      *exam.Manager
	sink         exam.ResultSink
	policy       exam.ScoringPolicy

	trialLimit      int
	defaultDuration time.Duration
	log             zerolog.Logger
}

// NewExamService creates a new ExamService. The scoring policy comes from
// configuration and applies to every session uniformly.
func NewExamService(
	cfg *config.Config,
	courses CourseStore,
	questions QuestionStore,
	entitlements AccessChecker,
	resultRepo *repository.ResultRepository,
	sink exam.ResultSink,
	log zerolog.Logger,
) (*ExamService, error) {
	policy, err := exam.PolicyFromName(cfg.ScoringPolicy, cfg.PointsPerCorrect)
	if err != nil {
		return nil, fmt.Errorf("resolve scoring policy: %w", err)
	}

	return &ExamService{
		courses:         courses,
		questions:       questions,
		entitlements:    entitlements,
		resultRepo:      resultRepo,
		manager:         exam.NewManager(),
		sink:            sink,
		policy:          policy,
		trialLimit:      cfg.TrialQuestionLimit,
		defaultDuration: cfg.DefaultExamDuration,
		log:             log.With().Str("component", "exam_service").Logger(),
	}, nil
}

// StartSession begins a fresh timed attempt for the user on the course,
// abandoning any previous attempt. Returns the session and whether the
// question set was truncated to the trial prefix.
func (s *ExamService) StartSession(ctx context.Context, userID, courseID int64) (*exam.Session, bool, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, false, fmt.Errorf("get course: %w", err)
	}

	duration := time.Duration(course.DurationMinutes) * time.Minute
	if duration <= 0 {
		duration = s.defaultDuration
	}

	questions, err := s.questions.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, false, fmt.Errorf("list questions: %w", err)
	}

	// Trial accounts see a fixed-size prefix of the set. This happens here,
	// before the controller ever sees the questions.
	trial := false
	if !s.entitlements.IsFullAccess(ctx, userID) && len(questions) > s.trialLimit {
		questions = questions[:s.trialLimit]
		trial = true
	}

	session, err := exam.Start(exam.SessionConfig{
		UserID:    userID,
		CourseID:  courseID,
		Questions: questions,
		Duration:  duration,
		Policy:    s.policy,
		Sink:      s.sink,
		Log:       s.log,
	})
	if err != nil {
		return nil, false, err
	}

	s.manager.Put(session)
	return session, trial, nil
}

// GetSession returns the user's live session for a course.
func (s *ExamService) GetSession(userID, courseID int64) (*exam.Session, error) {
	session, ok := s.manager.Get(userID, courseID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// AbandonSession tears down the user's session without recording a result.
func (s *ExamService) AbandonSession(userID, courseID int64) {
	s.manager.Remove(userID, courseID)
}

// ResultHistory lists the user's persisted results, newest first.
func (s *ExamService) ResultHistory(ctx context.Context, userID int64, limit int) ([]repository.ResultRow, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.resultRepo.ListByUser(ctx, userID, limit)
}
