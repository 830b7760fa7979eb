package service

import (
	"context"
	"fmt"

	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/repository"
)

// QuestionService handles question bank logic for the admin console.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// ListByCourse returns a course's questions, answer keys included. Admin
// only — student-facing question sets go through the exam session, which
// strips the keys.
func (s *QuestionService) ListByCourse(ctx context.Context, courseID int64) ([]model.Question, error) {
	questions, err := s.questionRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Create validates and inserts a new question.
func (s *QuestionService) Create(ctx context.Context, courseID int64, req *model.CreateQuestionRequest) (*model.Question, error) {
	q := questionFromRequest(courseID, req)
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid question: %w", err)
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Update validates and replaces a question.
func (s *QuestionService) Update(ctx context.Context, id, courseID int64, req *model.CreateQuestionRequest) (*model.Question, error) {
	q := questionFromRequest(courseID, req)
	q.ID = id
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid question: %w", err)
	}
	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes a question.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	return s.questionRepo.Delete(ctx, id)
}

func questionFromRequest(courseID int64, req *model.CreateQuestionRequest) *model.Question {
	return &model.Question{
		CourseID:    courseID,
		Category:    req.Category,
		Text:        req.Text,
		ImageURL:    req.ImageURL,
		Options:     req.Options,
		CorrectKey:  req.CorrectKey,
		Explanation: req.Explanation,
	}
}
