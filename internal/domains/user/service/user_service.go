package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"monster-backend/internal/domains/user/model"
	"monster-backend/internal/domains/user/repository"
)

// Service exposes the user surface: profile reads and the gold ledger.
type Service interface {
	// GetUserByID gets a user by ID.
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// ListUserGold returns a page of the user's gold ledger, newest first.
	// The user must exist.
	ListUserGold(ctx context.Context, userID uuid.UUID, req model.ListUserGoldRequest) (*model.GoldQueryResult, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) Service {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUserGold(
	ctx context.Context,
	userID uuid.UUID,
	req model.ListUserGoldRequest,
) (*model.GoldQueryResult, error) {
	// Step 1: Validate and apply pagination defaults
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()

	// Step 2: The ledger of an unknown user is a 404, not an empty page
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	// Step 3: Fetch the page
	entries, total, err := s.userRepo.ListGoldEntries(ctx, userID, req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	return model.NewGoldQueryResult(entries, req.Page, req.Limit, total), nil
}
