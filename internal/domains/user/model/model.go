package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is owned by the auth subsystem; only the fields this backend touches
// are modeled here.
type User struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"` // one of the role-table keys
	GoldBalance decimal.Decimal `json:"goldBalance"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UserGold is an append-only ledger record crediting a user with gold drained
// from a monster. Never mutated or deleted.
type UserGold struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user"`
	MonsterID *uuid.UUID      `json:"monster,omitempty"`
	Gold      decimal.Decimal `json:"gold"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

var (
	ErrUserNotFound = errors.New("user not found")
)
