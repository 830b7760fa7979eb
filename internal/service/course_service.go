package service

import (
	"context"

	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/repository"
)

// CourseService handles course catalog logic.
type CourseService struct {
	courseRepo *repository.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// List returns the full catalog.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// GetByID returns one course.
func (s *CourseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// Create inserts a new course (admin).
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:           req.Title,
		Slug:            req.Slug,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Update replaces a course's editable fields (admin).
func (s *CourseService) Update(ctx context.Context, id int64, req *model.UpdateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		ID:              id,
		Title:           req.Title,
		Slug:            req.Slug,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course and its content (admin).
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}
