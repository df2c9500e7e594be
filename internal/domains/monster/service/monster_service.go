package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"monster-backend/internal/domains/monster/model"
	"monster-backend/internal/domains/monster/repository"
	"monster-backend/pkg/cache"
	"monster-backend/pkg/logger"
)

const (
	monsterCacheKeyPrefix = "monster:"
	monsterCacheTTL       = 5 * time.Minute

	bcryptCost = 12
)

type monsterService struct {
	monsterRepo repository.MonsterRepository
	cache       cache.Cache
}

// cachedMonster is the cache envelope for a Monster. The entity excludes
// PasswordHash from JSON, so the envelope carries it separately; a cache hit
// must restore the full row or a later full-row update would blank the hash.
type cachedMonster struct {
	Monster      *model.Monster `json:"monster"`
	PasswordHash string         `json:"passwordHash"`
}

func NewMonsterService(monsterRepo repository.MonsterRepository, cacheClient cache.Cache) Service {
	return &monsterService{
		monsterRepo: monsterRepo,
		cache:       cacheClient,
	}
}

// ========================================
// CREATE
// ========================================

func (s *monsterService) CreateMonster(ctx context.Context, req model.CreateMonsterRequest) (*model.Monster, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Build the entity and hash its password
	monster := req.NewMonster()
	monster.ID = uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte(req.MonsterPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash monster password: %w", err)
	}
	monster.PasswordHash = string(hash)

	now := time.Now()
	monster.CreatedAt = now
	monster.UpdatedAt = now

	// Step 3: Persist
	if err := s.monsterRepo.Create(ctx, monster); err != nil {
		return nil, err
	}

	logger.Info("Monster created", map[string]interface{}{
		"monster_id": monster.ID.String(),
		"name":       monster.Name.First + " " + monster.Name.Last,
	})

	return monster, nil
}

// ========================================
// QUERY
// ========================================

func (s *monsterService) QueryMonsters(ctx context.Context, req model.ListMonstersRequest) (*model.QueryResult, error) {
	// Step 1: Validate and apply pagination defaults
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}
	req.Normalize()

	// Step 2: Fetch the page
	monsters, total, err := s.monsterRepo.List(ctx, req.Filter(), req.SortBy, req.Page, req.Limit)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSortField) {
			return nil, model.NewValidationError(err)
		}
		return nil, err
	}

	// Step 3: Reshape results when a projection was requested
	results, err := applyProjection(monsters, req.ProjectBy)
	if err != nil {
		return nil, model.NewValidationError(err)
	}

	return model.NewQueryResult(results, req.Page, req.Limit, total), nil
}

// applyProjection reshapes serialized monsters per "field:hide" or
// "field:include". An include keeps the field plus id; a hide drops it.
func applyProjection(monsters []*model.Monster, projectBy string) (interface{}, error) {
	if projectBy == "" {
		if monsters == nil {
			return []*model.Monster{}, nil
		}
		return monsters, nil
	}

	parts := strings.SplitN(projectBy, ":", 2)
	field, mode := parts[0], parts[1]

	projected := make([]map[string]interface{}, 0, len(monsters))
	for _, monster := range monsters {
		raw, err := json.Marshal(monster)
		if err != nil {
			return nil, fmt.Errorf("failed to project monster: %w", err)
		}

		var asMap map[string]interface{}
		if err := json.Unmarshal(raw, &asMap); err != nil {
			return nil, fmt.Errorf("failed to project monster: %w", err)
		}

		switch mode {
		case "hide":
			delete(asMap, field)
		case "include":
			kept := map[string]interface{}{"id": asMap["id"]}
			if value, ok := asMap[field]; ok {
				kept[field] = value
			}
			asMap = kept
		}

		projected = append(projected, asMap)
	}

	return projected, nil
}

func (s *monsterService) GetMonsterByID(ctx context.Context, id uuid.UUID) (*model.Monster, error) {
	cacheKey := monsterCacheKeyPrefix + id.String()

	// Step 1: Try cache first
	if s.cache != nil {
		cached := &cachedMonster{}
		if found, err := s.cache.Get(ctx, cacheKey, cached); err != nil {
			logger.Warn("Cache read failed", err)
		} else if found && cached.Monster != nil {
			cached.Monster.PasswordHash = cached.PasswordHash
			return cached.Monster, nil
		}
	}

	// Step 2: Fall through to the database
	monster, err := s.monsterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMonsterNotFound) {
			return nil, model.NewMonsterNotFoundError()
		}
		return nil, err
	}

	// Step 3: Populate cache
	if s.cache != nil {
		entry := cachedMonster{Monster: monster, PasswordHash: monster.PasswordHash}
		if err := s.cache.Set(ctx, cacheKey, entry, monsterCacheTTL); err != nil {
			logger.Warn("Cache write failed", err)
		}
	}

	return monster, nil
}

func (s *monsterService) GetMonster(ctx context.Context, id uuid.UUID, authorID *uuid.UUID) (*model.Monster, error) {
	if authorID == nil {
		return s.GetMonsterByID(ctx, id)
	}

	monster, err := s.monsterRepo.GetByIDAndAuthor(ctx, id, *authorID)
	if err != nil {
		if errors.Is(err, model.ErrMonsterNotFound) {
			return nil, model.NewMonsterNotFoundError()
		}
		return nil, err
	}

	return monster, nil
}

// ========================================
// UPDATE / DELETE
// ========================================

func (s *monsterService) UpdateMonsterByID(
	ctx context.Context,
	id uuid.UUID,
	req model.UpdateMonsterRequest,
	authorID *uuid.UUID,
) (*model.Monster, error) {
	// Step 1: Validate the patch
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	// Step 2: Resolve the target within the caller's author scope
	monster, err := s.GetMonster(ctx, id, authorID)
	if err != nil {
		return nil, err
	}

	// Step 3: Merge the patch
	req.ApplyTo(monster)

	if req.MonsterPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.MonsterPassword), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash monster password: %w", err)
		}
		monster.PasswordHash = string(hash)
	}

	monster.UpdatedAt = time.Now()

	// Step 4: Persist and invalidate cache
	if err := s.monsterRepo.Update(ctx, monster); err != nil {
		if errors.Is(err, model.ErrMonsterNotFound) {
			return nil, model.NewMonsterNotFoundError()
		}
		return nil, err
	}

	s.invalidateCache(ctx, id)

	return monster, nil
}

func (s *monsterService) DeleteMonsterByID(ctx context.Context, id uuid.UUID, authorID *uuid.UUID) (*model.Monster, error) {
	// Step 1: Resolve the target within the caller's author scope
	monster, err := s.GetMonster(ctx, id, authorID)
	if err != nil {
		return nil, err
	}

	// Step 2: Delete and invalidate cache
	if err := s.monsterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrMonsterNotFound) {
			return nil, model.NewMonsterNotFoundError()
		}
		return nil, err
	}

	s.invalidateCache(ctx, id)

	logger.Info("Monster deleted", map[string]interface{}{
		"monster_id": id.String(),
	})

	return monster, nil
}

// ========================================
// GOLD
// ========================================

func (s *monsterService) GetMonsterGold(
	ctx context.Context,
	id, userID uuid.UUID,
	amount decimal.Decimal,
) (*model.Monster, error) {
	// Step 1: The monster must exist before we touch balances
	monster, err := s.monsterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMonsterNotFound) {
			return nil, model.NewMonsterNotFoundError()
		}
		return nil, err
	}

	// Step 2: Pre-check the balance for the common failure
	if monster.GoldBalance.LessThan(amount) {
		return nil, model.NewInsufficientGoldError()
	}

	// Step 3: Drain atomically. A concurrent drain can still win the
	// balance between the pre-check and here; the transfer re-checks.
	if err := s.monsterRepo.TransferGold(ctx, id, userID, amount); err != nil {
		if errors.Is(err, model.ErrInsufficientGold) {
			return nil, model.NewInsufficientGoldError()
		}
		if errors.Is(err, model.ErrMonsterNotFound) {
			return nil, model.NewMonsterNotFoundError()
		}
		return nil, err
	}

	s.invalidateCache(ctx, id)

	logger.Info("Monster gold drained", map[string]interface{}{
		"monster_id": id.String(),
		"user_id":    userID.String(),
		"amount":     amount.String(),
	})

	// Step 4: Return the post-drain state
	updated, err := s.monsterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMonsterNotFound) {
			return nil, model.NewMonsterNotFoundError()
		}
		return nil, err
	}

	return updated, nil
}

// ========================================
// LIKES
// ========================================

func (s *monsterService) UpsertMonsterLike(ctx context.Context, monsterID, userID uuid.UUID) (*model.MonsterLike, error) {
	// Step 1: The monster must exist
	if _, err := s.monsterRepo.GetByID(ctx, monsterID); err != nil {
		if errors.Is(err, model.ErrMonsterNotFound) {
			return nil, model.NewMonsterNotFoundError()
		}
		return nil, err
	}

	// Step 2: First like creates the record as liked
	like, err := s.monsterRepo.GetLike(ctx, monsterID, userID)
	if err != nil {
		if !errors.Is(err, model.ErrLikeNotFound) {
			return nil, err
		}

		now := time.Now()
		like = &model.MonsterLike{
			ID:        uuid.New(),
			UserID:    userID,
			MonsterID: monsterID,
			Liked:     true,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.monsterRepo.CreateLike(ctx, like); err != nil {
			return nil, err
		}

		s.invalidateCache(ctx, monsterID)
		return like, nil
	}

	// Step 3: Subsequent calls flip the state
	like.Liked = !like.Liked
	like.UpdatedAt = time.Now()

	if err := s.monsterRepo.UpdateLike(ctx, like); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, monsterID)
	return like, nil
}

func (s *monsterService) GetMonstersLikes(ctx context.Context) ([]*model.Monster, error) {
	monsters, err := s.monsterRepo.ListByLikes(ctx)
	if err != nil {
		return nil, err
	}

	if monsters == nil {
		monsters = []*model.Monster{}
	}

	return monsters, nil
}

// invalidateCache drops the cached monster. Failures are logged, not raised;
// the database already holds the truth.
func (s *monsterService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}

	cacheKey := monsterCacheKeyPrefix + id.String()
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Warn("Cache invalidation failed", err)
	}
}
