package service

import (
	"context"

	"github.com/kelasfokus/fokus-backend/internal/model"
	"github.com/kelasfokus/fokus-backend/internal/repository"
	"github.com/kelasfokus/fokus-backend/internal/response"
)

// UserService handles user administration.
type UserService struct {
	userRepo     *repository.UserRepository
	entitlements *EntitlementService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, entitlements *EntitlementService) *UserService {
	return &UserService{userRepo: userRepo, entitlements: entitlements}
}

// List returns users with pagination metadata for the admin console.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]model.User, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}

	users, total, err := s.userRepo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}

	totalPages := (int(total) + perPage - 1) / perPage
	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: int(total),
		TotalPages: totalPages,
	}
	return users, pagination, nil
}

// RevokePremium downgrades an account to the free tier immediately.
func (s *UserService) RevokePremium(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetSubscription(ctx, userID, model.SubscriptionFree, nil); err != nil {
		return err
	}
	s.entitlements.Invalidate(ctx, userID)
	return nil
}
