package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/users"
)

// AuthHandler defines the interface for account self service
type AuthHandler interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	GetProfile(ctx *gin.Context)
	UpdateProfile(ctx *gin.Context)
	ChangePassword(ctx *gin.Context)
}

type authHandler struct {
	authService users.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService users.AuthService) AuthHandler {
	return &authHandler{authService: authService}
}

// Register creates an account
func (handler *authHandler) Register(ctx *gin.Context) {
	var req RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := handler.authService.Register(ctx, req.Email, req.Password, req.FullName, req.Phone)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newUserResponse(user))
}

// Login issues a bearer token
func (handler *authHandler) Login(ctx *gin.Context) {
	var req LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	token, err := handler.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
		User:        newUserResponse(token.User),
	})
}

// GetProfile returns the caller's account
func (handler *authHandler) GetProfile(ctx *gin.Context) {
	user, err := handler.authService.GetProfile(ctx, actorFrom(ctx).UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateProfile changes name and phone of the caller
func (handler *authHandler) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := handler.authService.UpdateProfile(ctx, actorFrom(ctx).UserID, req.FullName, req.Phone)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// ChangePassword replaces the caller's password
func (handler *authHandler) ChangePassword(ctx *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := handler.authService.ChangePassword(ctx, actorFrom(ctx).UserID, req.OldPassword, req.NewPassword); err != nil {
		respondError(ctx, err)
		return
	}

	noContent(ctx)
}
