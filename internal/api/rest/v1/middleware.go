package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turrs/bank-skd/internal/domain/users"
	"github.com/turrs/bank-skd/internal/pkg/logger"
)

const actorKey = "actor"

// accountLoader reads the current state of the account a token was issued for
type accountLoader interface {
	GetProfile(ctx context.Context, userID string) (*users.User, error)
}

// AuthMiddleware requires a valid bearer token for an existing active account
// and stores the caller identity with the role currently on record
func AuthMiddleware(issuer users.TokenIssuer, accounts accountLoader) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "missing bearer token"})
			return
		}

		claims, err := issuer.Parse(strings.TrimSpace(token))
		if err != nil {
			respondError(ctx, err)
			return
		}

		account, err := accounts.GetProfile(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				err = users.ErrInvalidToken
			}
			respondError(ctx, err)
			return
		}
		if !account.IsActive {
			respondError(ctx, users.ErrAccountDeactivated)
			return
		}

		ctx.Set(actorKey, account.Actor())
		ctx.Next()
	}
}

// RequireRoles lets only callers holding one of roles through
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor := actorFrom(ctx)
		for _, role := range roles {
			if actor.Role == role {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: "insufficient role"})
	}
}

// ErrorLogger logs errors handlers attached to the request
func ErrorLogger(log logger.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		for _, e := range ctx.Errors {
			log.Error(ctx.Request.Method, " ", ctx.FullPath(), ": ", e.Err)
		}
	}
}

// actorFrom returns the identity stored by AuthMiddleware
func actorFrom(ctx *gin.Context) users.Actor {
	if v, ok := ctx.Get(actorKey); ok {
		if actor, ok := v.(users.Actor); ok {
			return actor
		}
	}
	return users.Actor{}
}
