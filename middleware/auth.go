package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devlog/goblog/apperror"
	"github.com/devlog/goblog/models"
	"github.com/devlog/goblog/stores"
	"github.com/devlog/goblog/utils"
)

// ContextUserKey is the key used to store the resolved user in Gin context.
const ContextUserKey = "current_user"

// resolveUser is the single identity-resolution primitive: it reads the
// Bearer token, verifies it, and loads the subject from the user store.
// AuthRequired and AuthOptional differ only in what they do with a failure.
func resolveUser(ctx *gin.Context, users stores.UserStore) (*models.User, error) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperror.New(apperror.Unauthorized, "Authorization header is missing")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, apperror.New(apperror.Unauthorized, "Invalid authorization header format")
	}

	claims, err := utils.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, apperror.New(apperror.Unauthorized, "Token expired")
		}
		return nil, apperror.New(apperror.Unauthorized, "Invalid token")
	}

	user, err := users.FindByID(ctx.Request.Context(), claims.UserID)
	if err != nil {
		// A token for a vanished subject is as unauthorized as a bad one.
		return nil, apperror.New(apperror.Unauthorized, "User not found")
	}

	return user, nil
}

// AuthRequired ensures the request carries a valid identity token and stores
// the resolved user in the context; any failure aborts with 401.
func AuthRequired(users stores.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := resolveUser(ctx, users)
		if err != nil {
			utils.Fail(ctx, err)
			ctx.Abort()
			return
		}
		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

// AuthOptional resolves the caller's identity when a valid token is present
// and silently continues without one otherwise. Used by endpoints whose
// behavior adapts to the viewer, such as private post visibility.
func AuthOptional(users stores.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if user, err := resolveUser(ctx, users); err == nil {
			ctx.Set(ContextUserKey, user)
		}
		ctx.Next()
	}
}

// CurrentUser returns the user resolved by AuthRequired or AuthOptional.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	v, exists := ctx.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
