package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monster-backend/internal/domains/user/model"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*model.User
	entries []*model.UserGold
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) ListGoldEntries(_ context.Context, userID uuid.UUID, page, limit int) ([]*model.UserGold, int, error) {
	var matching []*model.UserGold
	for _, entry := range f.entries {
		if entry.UserID == userID {
			matching = append(matching, entry)
		}
	}

	start := (page - 1) * limit
	if start >= len(matching) {
		return nil, len(matching), nil
	}

	end := start + limit
	if end > len(matching) {
		end = len(matching)
	}

	return matching[start:end], len(matching), nil
}

func TestListUserGold(t *testing.T) {
	userID := uuid.New()

	seed := func(entryCount int) *fakeUserRepo {
		repo := newFakeUserRepo()
		repo.users[userID] = &model.User{ID: userID, Name: "Alice", Role: "user"}

		for i := 0; i < entryCount; i++ {
			monsterID := uuid.New()
			repo.entries = append(repo.entries, &model.UserGold{
				ID:        uuid.New(),
				UserID:    userID,
				MonsterID: &monsterID,
				Gold:      decimal.NewFromInt(10),
				CreatedAt: time.Now(),
			})
		}
		return repo
	}

	t.Run("returns a page with ceil total pages", func(t *testing.T) {
		svc := NewUserService(seed(25))

		result, err := svc.ListUserGold(context.Background(), userID, model.ListUserGoldRequest{Limit: 10, Page: 3})
		require.NoError(t, err)

		assert.Len(t, result.Results, 5)
		assert.Equal(t, 25, result.TotalResults)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("defaults pagination", func(t *testing.T) {
		svc := NewUserService(seed(3))

		result, err := svc.ListUserGold(context.Background(), userID, model.ListUserGoldRequest{})
		require.NoError(t, err)

		assert.Equal(t, 10, result.Limit)
		assert.Equal(t, 1, result.Page)
		assert.Len(t, result.Results, 3)
	})

	t.Run("empty ledger is an empty page, not nil", func(t *testing.T) {
		svc := NewUserService(seed(0))

		result, err := svc.ListUserGold(context.Background(), userID, model.ListUserGoldRequest{})
		require.NoError(t, err)

		assert.NotNil(t, result.Results)
		assert.Empty(t, result.Results)
		assert.Equal(t, 0, result.TotalPages)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo())

		_, err := svc.ListUserGold(context.Background(), uuid.New(), model.ListUserGoldRequest{})
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})

	t.Run("limit above cap is rejected", func(t *testing.T) {
		svc := NewUserService(seed(1))

		_, err := svc.ListUserGold(context.Background(), userID, model.ListUserGoldRequest{Limit: 500})
		assert.Error(t, err)
	})
}
