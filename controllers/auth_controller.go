package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devlog/goblog/middleware"
	"github.com/devlog/goblog/services"
	"github.com/devlog/goblog/utils"
)

// AuthController handles registration, login, and the authenticated
// profile endpoints.
type AuthController struct {
	auth  *services.AuthService
	users *services.UserService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService, users *services.UserService) *AuthController {
	return &AuthController{auth: auth, users: users}
}

// Register creates an account and returns a token with the public user.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required,min=1"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := a.auth.Register(ctx.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.Success(ctx, result)
}

// Login verifies credentials and returns a token with the public user.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := a.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.Success(ctx, result)
}

// Me returns the current authenticated user's public projection.
func (a *AuthController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, 401, 40100, "unauthorized")
		return
	}
	utils.Success(ctx, user.Public())
}

// UpdateProfile allows the authenticated user to update name and avatar.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, 401, 40100, "unauthorized")
		return
	}

	var req struct {
		Name   *string `json:"name" binding:"omitempty,min=1"`
		Avatar *string `json:"avatar"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	pub, err := a.users.UpdateProfile(ctx.Request.Context(), user, req.Name, req.Avatar)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:user:public:" + strconv.Itoa(int(user.ID)))

	utils.Success(ctx, pub)
}
