package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monster-backend/internal/config"
	"monster-backend/internal/domains/monster/model"
	"monster-backend/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubService records calls and returns canned results.
type stubService struct {
	createReq    *model.CreateMonsterRequest
	updateScope  *uuid.UUID
	goldUserID   uuid.UUID
	goldAmount   decimal.Decimal
	returnErr    error
	monster      *model.Monster
	scopeCapture bool
}

func (s *stubService) CreateMonster(_ context.Context, req model.CreateMonsterRequest) (*model.Monster, error) {
	s.createReq = &req
	return s.result()
}

func (s *stubService) QueryMonsters(_ context.Context, _ model.ListMonstersRequest) (*model.QueryResult, error) {
	if s.returnErr != nil {
		return nil, s.returnErr
	}
	return model.NewQueryResult([]*model.Monster{}, 1, 10, 0), nil
}

func (s *stubService) GetMonsterByID(_ context.Context, _ uuid.UUID) (*model.Monster, error) {
	return s.result()
}

func (s *stubService) GetMonster(_ context.Context, _ uuid.UUID, _ *uuid.UUID) (*model.Monster, error) {
	return s.result()
}

func (s *stubService) UpdateMonsterByID(_ context.Context, _ uuid.UUID, _ model.UpdateMonsterRequest, authorID *uuid.UUID) (*model.Monster, error) {
	s.updateScope = authorID
	s.scopeCapture = true
	return s.result()
}

func (s *stubService) GetMonsterGold(_ context.Context, _, userID uuid.UUID, amount decimal.Decimal) (*model.Monster, error) {
	s.goldUserID = userID
	s.goldAmount = amount
	return s.result()
}

func (s *stubService) DeleteMonsterByID(_ context.Context, _ uuid.UUID, authorID *uuid.UUID) (*model.Monster, error) {
	s.updateScope = authorID
	s.scopeCapture = true
	return s.result()
}

func (s *stubService) UpsertMonsterLike(_ context.Context, monsterID, userID uuid.UUID) (*model.MonsterLike, error) {
	if s.returnErr != nil {
		return nil, s.returnErr
	}
	return &model.MonsterLike{ID: uuid.New(), MonsterID: monsterID, UserID: userID, Liked: true}, nil
}

func (s *stubService) GetMonstersLikes(_ context.Context) ([]*model.Monster, error) {
	if s.returnErr != nil {
		return nil, s.returnErr
	}
	return []*model.Monster{}, nil
}

func (s *stubService) result() (*model.Monster, error) {
	if s.returnErr != nil {
		return nil, s.returnErr
	}
	if s.monster != nil {
		return s.monster, nil
	}
	return &model.Monster{ID: uuid.New()}, nil
}

// asActor injects the authenticated actor the way middleware.Auth would.
func asActor(actor uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, actor)
		c.Set(middleware.CtxRole, role)
		c.Next()
	}
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestAuthorScope(t *testing.T) {
	actor := uuid.New()

	t.Run("superAdmin is unscoped", func(t *testing.T) {
		assert.Nil(t, authorScope(actor, config.RoleSuperAdmin))
	})

	t.Run("everyone else is scoped to themselves", func(t *testing.T) {
		for _, role := range []string{"user", "admin", ""} {
			scope := authorScope(actor, role)
			require.NotNil(t, scope)
			assert.Equal(t, actor, *scope)
		}
	})
}

func TestMapMonsterError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found maps to 404", model.NewMonsterNotFoundError(), http.StatusNotFound, model.ErrCodeMonsterNotFound},
		{"insufficient gold maps to 406", model.NewInsufficientGoldError(), http.StatusNotAcceptable, model.ErrCodeInsufficientGold},
		{"validation maps to 400", model.NewValidationError(errors.New("bad")), http.StatusBadRequest, model.ErrCodeValidation},
		{"unknown maps to 500", errors.New("boom"), http.StatusInternalServerError, "SYS_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := mapMonsterError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestCreateMonsterNarrowing(t *testing.T) {
	body := map[string]interface{}{
		"name":            map[string]string{"first": "Janfri", "last": "Man", "title": "Mr"},
		"description":     "A fearsome but polite monster",
		"nationality":     []string{"ES"},
		"image":           "https://example.com/janfri.png",
		"speed":           42,
		"health":          88,
		"monsterPassword": "password1",
	}

	post := func(t *testing.T, svc *stubService, actor uuid.UUID, role string, author string) *httptest.ResponseRecorder {
		t.Helper()

		payload := make(map[string]interface{}, len(body)+1)
		for k, v := range body {
			payload[k] = v
		}
		if author != "" {
			payload["author"] = author
		}

		router := gin.New()
		router.POST("/monsters", asActor(actor, role), NewMonsterHandler(svc).CreateMonster)

		req := httptest.NewRequest(http.MethodPost, "/monsters", jsonBody(t, payload))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("admin without author defaults to self", func(t *testing.T) {
		svc := &stubService{}
		actor := uuid.New()

		w := post(t, svc, actor, "admin", "")

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.createReq)
		assert.Equal(t, actor.String(), svc.createReq.Author)
	})

	t.Run("admin cannot attribute to someone else", func(t *testing.T) {
		svc := &stubService{}
		actor := uuid.New()
		someoneElse := uuid.New()

		w := post(t, svc, actor, "admin", someoneElse.String())

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.createReq)
		assert.Equal(t, actor.String(), svc.createReq.Author)
	})

	t.Run("superAdmin may set an explicit author", func(t *testing.T) {
		svc := &stubService{}
		actor := uuid.New()
		someoneElse := uuid.New()

		w := post(t, svc, actor, config.RoleSuperAdmin, someoneElse.String())

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.createReq)
		assert.Equal(t, someoneElse.String(), svc.createReq.Author)
	})

	t.Run("superAdmin without author defaults to self", func(t *testing.T) {
		svc := &stubService{}
		actor := uuid.New()

		w := post(t, svc, actor, config.RoleSuperAdmin, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, svc.createReq)
		assert.Equal(t, actor.String(), svc.createReq.Author)
	})
}

func TestGetMonsterGoldHandler(t *testing.T) {
	route := func(svc *stubService, actor uuid.UUID) *gin.Engine {
		router := gin.New()
		router.PATCH("/monsters/:monsterId", asActor(actor, "admin"), NewMonsterHandler(svc).GetMonsterGold)
		return router
	}

	t.Run("ledger beneficiary is the actor", func(t *testing.T) {
		svc := &stubService{}
		actor := uuid.New()
		router := route(svc, actor)

		req := httptest.NewRequest(http.MethodPatch, "/monsters/"+uuid.New().String(),
			jsonBody(t, map[string]interface{}{"goldGetAmount": 40}))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, actor, svc.goldUserID)
		assert.True(t, svc.goldAmount.Equal(decimal.NewFromInt(40)))
	})

	t.Run("missing amount is a bad request", func(t *testing.T) {
		svc := &stubService{}
		router := route(svc, uuid.New())

		req := httptest.NewRequest(http.MethodPatch, "/monsters/"+uuid.New().String(),
			jsonBody(t, map[string]interface{}{}))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("insufficient gold returns 406", func(t *testing.T) {
		svc := &stubService{returnErr: model.NewInsufficientGoldError()}
		router := route(svc, uuid.New())

		req := httptest.NewRequest(http.MethodPatch, "/monsters/"+uuid.New().String(),
			jsonBody(t, map[string]interface{}{"goldGetAmount": 9999}))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotAcceptable, w.Code)
	})

	t.Run("invalid monster id is a bad request", func(t *testing.T) {
		svc := &stubService{}
		router := route(svc, uuid.New())

		req := httptest.NewRequest(http.MethodPatch, "/monsters/not-a-uuid",
			jsonBody(t, map[string]interface{}{"goldGetAmount": 1}))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateMonsterScoping(t *testing.T) {
	patch := func(t *testing.T, svc *stubService, actor uuid.UUID, role string) *httptest.ResponseRecorder {
		t.Helper()

		router := gin.New()
		router.PUT("/monsters/:monsterId", asActor(actor, role), NewMonsterHandler(svc).UpdateMonster)

		req := httptest.NewRequest(http.MethodPut, "/monsters/"+uuid.New().String(),
			jsonBody(t, map[string]interface{}{"speed": 10}))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("admin update is scoped to own monsters", func(t *testing.T) {
		svc := &stubService{}
		actor := uuid.New()

		w := patch(t, svc, actor, "admin")

		assert.Equal(t, http.StatusOK, w.Code)
		require.True(t, svc.scopeCapture)
		require.NotNil(t, svc.updateScope)
		assert.Equal(t, actor, *svc.updateScope)
	})

	t.Run("superAdmin update is unscoped", func(t *testing.T) {
		svc := &stubService{}

		w := patch(t, svc, uuid.New(), config.RoleSuperAdmin)

		assert.Equal(t, http.StatusOK, w.Code)
		require.True(t, svc.scopeCapture)
		assert.Nil(t, svc.updateScope)
	})

	t.Run("missing monster returns 404", func(t *testing.T) {
		svc := &stubService{returnErr: model.NewMonsterNotFoundError()}

		w := patch(t, svc, uuid.New(), "admin")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteMonsterHandler(t *testing.T) {
	svc := &stubService{}
	actor := uuid.New()

	router := gin.New()
	router.DELETE("/monsters/:monsterId", asActor(actor, "admin"), NewMonsterHandler(svc).DeleteMonster)

	req := httptest.NewRequest(http.MethodDelete, "/monsters/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}
