package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monster-backend/internal/config"
	"monster-backend/internal/domains/user/model"
	"monster-backend/internal/domains/user/service"
	"monster-backend/internal/shared/middleware"
	"monster-backend/internal/shared/response"
	"monster-backend/pkg/logger"
)

type UserHandler struct {
	userService service.Service
}

func NewUserHandler(userService service.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUserGold handles GET /users/:userId/gold
// A user may read their own ledger; reading someone else's needs getUsers.
func (h *UserHandler) ListUserGold(c *gin.Context) {
	// Step 1: Parse path and query
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "userId must be a valid UUID")
		return
	}

	var req model.ListUserGoldRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// Step 2: Self-or-permission check
	actor, ok := middleware.Actor(c)
	if !ok {
		response.Unauthorized(c, "missing authentication")
		return
	}

	if actor != userID && !config.HasPermission(c.GetString(middleware.CtxRole), config.PermGetUsers) {
		response.Forbidden(c, "insufficient permissions")
		return
	}

	// Step 3: Fetch
	result, err := h.userService.ListUserGold(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}

		logger.Error("User gold request failed", err)
		response.InternalServerError(c, "internal server error")
		return
	}

	response.Success(c, http.StatusOK, result)
}
