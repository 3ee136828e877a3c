package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/dashboard"
	"github.com/turrs/bank-skd/internal/domain/users"
)

// AdminHandler defines the interface for back-office account management
type AdminHandler interface {
	ListUsers(ctx *gin.Context)
	SetRole(ctx *gin.Context)
	SetActive(ctx *gin.Context)
	DeleteUser(ctx *gin.Context)
	Stats(ctx *gin.Context)
}

type adminHandler struct {
	userAdminService users.UserAdminService
	statsService     dashboard.StatsService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userAdminService users.UserAdminService, statsService dashboard.StatsService) AdminHandler {
	return &adminHandler{userAdminService: userAdminService, statsService: statsService}
}

// ListUsers fetches accounts optionally filtered by query parameters
func (handler *adminHandler) ListUsers(ctx *gin.Context) {
	query := users.NewUserQuery()

	if role := ctx.Query("role"); len(role) > 0 {
		query.Role = role
	}
	if email := ctx.Query("email"); len(email) > 0 {
		query.Email = email
	}
	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	var ok bool
	if query.Limit, ok = queryInt(ctx, "limit", query.Limit); !ok {
		return
	}
	if query.Offset, ok = queryInt(ctx, "offset", 0); !ok {
		return
	}

	if err := query.Validate(); err != nil {
		respondError(ctx, err)
		return
	}

	list, err := handler.userAdminService.List(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]UserResponse, 0, len(list))
	for _, u := range list {
		response = append(response, newUserResponse(u))
	}
	ctx.JSON(http.StatusOK, response)
}

// SetRole assigns a role to an account
func (handler *adminHandler) SetRole(ctx *gin.Context) {
	var req SetRoleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := handler.userAdminService.SetRole(ctx, actorFrom(ctx), ctx.Param("id"), req.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// SetActive activates or deactivates an account
func (handler *adminHandler) SetActive(ctx *gin.Context) {
	var req SetActiveRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := handler.userAdminService.SetActive(ctx, actorFrom(ctx), ctx.Param("id"), *req.IsActive)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// DeleteUser removes an account
func (handler *adminHandler) DeleteUser(ctx *gin.Context) {
	if err := handler.userAdminService.DeleteByID(ctx, actorFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	noContent(ctx)
}

// Stats returns the admin overview
func (handler *adminHandler) Stats(ctx *gin.Context) {
	stats, err := handler.statsService.Stats(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
