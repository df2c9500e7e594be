package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monster-backend/internal/config"
	"monster-backend/internal/domains/monster/model"
	"monster-backend/internal/domains/monster/service"
	"monster-backend/internal/shared/middleware"
	"monster-backend/internal/shared/response"
	"monster-backend/pkg/logger"
)

type MonsterHandler struct {
	monsterService service.Service
}

func NewMonsterHandler(monsterService service.Service) *MonsterHandler {
	return &MonsterHandler{monsterService: monsterService}
}

// authorScope returns the author filter for write operations.
// superAdmin operates on any monster; everyone else only on their own.
func authorScope(actor uuid.UUID, role string) *uuid.UUID {
	if role == config.RoleSuperAdmin {
		return nil
	}
	return &actor
}

// mapMonsterError translates a service error into an HTTP status and code.
func mapMonsterError(err error) (int, string, string) {
	var monsterErr *model.MonsterError
	if errors.As(err, &monsterErr) {
		switch monsterErr.Code {
		case model.ErrCodeMonsterNotFound:
			return http.StatusNotFound, monsterErr.Code, monsterErr.Message
		case model.ErrCodeInsufficientGold:
			return http.StatusNotAcceptable, monsterErr.Code, monsterErr.Message
		case model.ErrCodeValidation:
			return http.StatusBadRequest, monsterErr.Code, monsterErr.Message
		}
	}

	return http.StatusInternalServerError, "SYS_001", "internal server error"
}

func (h *MonsterHandler) respondError(c *gin.Context, err error) {
	status, code, message := mapMonsterError(err)

	if status == http.StatusInternalServerError {
		logger.Error("Monster request failed", err)
	}

	response.ErrorResponse(c, status, code, message)
}

func monsterID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("monsterId"))
	if err != nil {
		response.BadRequest(c, "monsterId must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// ========================================
// CRUD
// ========================================

// CreateMonster handles POST /monsters
func (h *MonsterHandler) CreateMonster(c *gin.Context) {
	// Step 1: Parse request body
	var req model.CreateMonsterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// Step 2: Resolve the author. Only superAdmin may create on behalf of
	// someone else; everyone else has the author forced to themselves.
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	if req.Author == "" || c.GetString(middleware.CtxRole) != config.RoleSuperAdmin {
		req.Author = actor.String()
	}

	// Step 3: Create
	monster, err := h.monsterService.CreateMonster(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, monster)
}

// ListMonsters handles GET /monsters
func (h *MonsterHandler) ListMonsters(c *gin.Context) {
	var req model.ListMonstersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	result, err := h.monsterService.QueryMonsters(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetMonster handles GET /monsters/:monsterId
func (h *MonsterHandler) GetMonster(c *gin.Context) {
	id, ok := monsterID(c)
	if !ok {
		return
	}

	monster, err := h.monsterService.GetMonsterByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, monster)
}

// UpdateMonster handles PUT /monsters/:monsterId
func (h *MonsterHandler) UpdateMonster(c *gin.Context) {
	// Step 1: Parse path and body
	id, ok := monsterID(c)
	if !ok {
		return
	}

	var req model.UpdateMonsterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// Step 2: Narrow to the actor's own monsters unless superAdmin
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}
	scope := authorScope(actor, c.GetString(middleware.CtxRole))

	// Step 3: Update
	monster, err := h.monsterService.UpdateMonsterByID(c.Request.Context(), id, req, scope)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, monster)
}

// DeleteMonster handles DELETE /monsters/:monsterId
func (h *MonsterHandler) DeleteMonster(c *gin.Context) {
	id, ok := monsterID(c)
	if !ok {
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}
	scope := authorScope(actor, c.GetString(middleware.CtxRole))

	if _, err := h.monsterService.DeleteMonsterByID(c.Request.Context(), id, scope); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ========================================
// GOLD
// ========================================

// GetMonsterGold handles PATCH /monsters/:monsterId
// The drained amount lands in the calling user's gold ledger.
func (h *MonsterHandler) GetMonsterGold(c *gin.Context) {
	// Step 1: Parse path and body
	id, ok := monsterID(c)
	if !ok {
		return
	}

	var req model.GetMonsterGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Step 2: The ledger beneficiary is always the actor
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	// Step 3: Drain
	monster, err := h.monsterService.GetMonsterGold(c.Request.Context(), id, actor, req.Amount())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, monster)
}

// ========================================
// LIKES
// ========================================

// LikeMonster handles PUT /monsters/:monsterId/like
func (h *MonsterHandler) LikeMonster(c *gin.Context) {
	id, ok := monsterID(c)
	if !ok {
		return
	}

	actor, ok := middleware.Actor(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	like, err := h.monsterService.UpsertMonsterLike(c.Request.Context(), id, actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, like)
}

// GetMonstersLikes handles GET /monsters/:monsterId/like
// Returns the full leaderboard of monsters by likes, matching the
// route shape of the like toggle.
func (h *MonsterHandler) GetMonstersLikes(c *gin.Context) {
	monsters, err := h.monsterService.GetMonstersLikes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, monsters)
}
