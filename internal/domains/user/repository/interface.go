package repository

import (
	"context"

	"github.com/google/uuid"

	"monster-backend/internal/domains/user/model"
)

// UserRepository reads users and their gold ledger.
// Ledger entries are written by the monster gold-drain transaction.
type UserRepository interface {
	// GetByID gets a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// ListGoldEntries lists a user's gold ledger entries, newest first.
	ListGoldEntries(ctx context.Context, userID uuid.UUID, page, limit int) ([]*model.UserGold, int, error)
}
