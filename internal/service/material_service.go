package service

import (
	"context"

	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/repository"
)

// MaterialService handles study material logic. Content is stored and
// served as raw markdown; rendering is a client concern.
type MaterialService struct {
	materialRepo *repository.MaterialRepository
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(materialRepo *repository.MaterialRepository) *MaterialService {
	return &MaterialService{materialRepo: materialRepo}
}

// ListByCourse returns a course's materials in reading order.
func (s *MaterialService) ListByCourse(ctx context.Context, courseID int64) ([]model.Material, error) {
	materials, err := s.materialRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if materials == nil {
		materials = []model.Material{}
	}
	return materials, nil
}

// Create inserts a new material (admin).
func (s *MaterialService) Create(ctx context.Context, courseID int64, req *model.CreateMaterialRequest) (*model.Material, error) {
	material := &model.Material{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		OrderNum: req.OrderNum,
	}
	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// Update replaces a material's editable fields (admin).
func (s *MaterialService) Update(ctx context.Context, id int64, req *model.CreateMaterialRequest) (*model.Material, error) {
	material := &model.Material{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		OrderNum: req.OrderNum,
	}
	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// Delete removes a material (admin).
func (s *MaterialService) Delete(ctx context.Context, id int64) error {
	return s.materialRepo.Delete(ctx, id)
}
