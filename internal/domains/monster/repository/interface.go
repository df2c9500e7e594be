package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"monster-backend/internal/domains/monster/model"
)

// MonsterRepository is the data access contract for monsters and their likes.
// Every returned Monster carries its computed likes count.
type MonsterRepository interface {
	// ========================================
	// CRUD
	// ========================================

	// Create inserts a new monster.
	Create(ctx context.Context, monster *model.Monster) error

	// GetByID gets a monster by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Monster, error)

	// GetByIDAndAuthor gets a monster only if it belongs to the author.
	// A monster owned by someone else reads as not found.
	GetByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*model.Monster, error)

	// List returns a filtered, sorted page of monsters plus the total match count.
	List(ctx context.Context, filter model.MonsterFilter, sortBy string, page, limit int) ([]*model.Monster, int, error)

	// ListByLikes returns all monsters sorted descending by likes count.
	ListByLikes(ctx context.Context) ([]*model.Monster, error)

	// Update persists the full monster row.
	Update(ctx context.Context, monster *model.Monster) error

	// Delete removes a monster.
	Delete(ctx context.Context, id uuid.UUID) error

	// ========================================
	// GOLD
	// ========================================

	// TransferGold decrements the monster's balance and appends the user's
	// ledger record in one transaction. Returns ErrInsufficientGold when the
	// conditional decrement matches no row.
	TransferGold(ctx context.Context, monsterID, userID uuid.UUID, amount decimal.Decimal) error

	// ========================================
	// LIKES
	// ========================================

	// GetLike gets the like record for a (monster, user) pair.
	GetLike(ctx context.Context, monsterID, userID uuid.UUID) (*model.MonsterLike, error)

	// CreateLike inserts a new like record.
	CreateLike(ctx context.Context, like *model.MonsterLike) error

	// UpdateLike persists a flipped like record.
	UpdateLike(ctx context.Context, like *model.MonsterLike) error
}
