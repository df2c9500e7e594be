package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"monster-backend/internal/domains/monster/model"
)

// Service is the monster business logic, one method per operation.
//
// authorID, where present, is the access-control primitive: nil means
// "regardless of author", non-nil narrows the target to monsters owned by
// that author, and a monster owned by someone else behaves as not found.
type Service interface {
	// CreateMonster creates and returns a new monster.
	CreateMonster(ctx context.Context, req model.CreateMonsterRequest) (*model.Monster, error)

	// QueryMonsters returns a page of monsters matching the request filter,
	// each with its likes count populated.
	QueryMonsters(ctx context.Context, req model.ListMonstersRequest) (*model.QueryResult, error)

	// GetMonsterByID gets a monster by ID.
	GetMonsterByID(ctx context.Context, id uuid.UUID) (*model.Monster, error)

	// GetMonster gets a monster by ID, narrowed by author when authorID is set.
	GetMonster(ctx context.Context, id uuid.UUID, authorID *uuid.UUID) (*model.Monster, error)

	// UpdateMonsterByID merges the patch onto the monster and persists it.
	UpdateMonsterByID(ctx context.Context, id uuid.UUID, req model.UpdateMonsterRequest, authorID *uuid.UUID) (*model.Monster, error)

	// GetMonsterGold drains amount from the monster's balance into the user's
	// gold ledger and returns the updated monster.
	GetMonsterGold(ctx context.Context, id, userID uuid.UUID, amount decimal.Decimal) (*model.Monster, error)

	// DeleteMonsterByID removes the monster and returns its last-known state.
	DeleteMonsterByID(ctx context.Context, id uuid.UUID, authorID *uuid.UUID) (*model.Monster, error)

	// UpsertMonsterLike toggles the user's like for the monster, creating the
	// record with liked=true on first call.
	UpsertMonsterLike(ctx context.Context, monsterID, userID uuid.UUID) (*model.MonsterLike, error)

	// GetMonstersLikes returns all monsters sorted descending by likes count.
	GetMonstersLikes(ctx context.Context) ([]*model.Monster, error)
}
