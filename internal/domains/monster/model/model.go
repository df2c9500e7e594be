package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonsterName is the composite name the API exposes as a nested object.
type MonsterName struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Title string `json:"title"`
}

// Monster is the persisted collectible entity.
// Likes is not stored; it is counted from monster_likes on every read.
type Monster struct {
	ID          uuid.UUID       `json:"id"`
	Name        MonsterName     `json:"name"`
	Gender      *string         `json:"gender,omitempty"` // male, female, other
	Description string          `json:"description"`
	Nationality []string        `json:"nationality"`
	Image       string          `json:"image"`
	GoldBalance decimal.Decimal `json:"goldBalance"`
	Speed       float64         `json:"speed"`
	Health      float64         `json:"health"`
	SecretNotes *string         `json:"secretNotes,omitempty"`

	// bcrypt hash of monsterPassword. Never serialized.
	PasswordHash string `json:"-"`

	// Author is the user who created the monster in our system.
	AuthorID *uuid.UUID `json:"author,omitempty"`

	Likes int `json:"likes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MonsterLike records one user's like state for one monster.
// Logically keyed by (user, monster); toggled, never deleted.
type MonsterLike struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	MonsterID uuid.UUID `json:"monster"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MonsterFilter narrows list queries. Both fields are partial matches.
type MonsterFilter struct {
	NameFirst string
	NameLast  string
}
