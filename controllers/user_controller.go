package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlog/goblog/services"
	"github.com/devlog/goblog/utils"
)

// UserController serves the public user surface.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a UserController.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// ListUsers returns all users as public projections.
func (u *UserController) ListUsers(ctx *gin.Context) {
	users, err := u.users.List(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, users)
}

// GetUser returns one user's public projection.
func (u *UserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	cacheKey := "cache:user:public:" + strconv.Itoa(int(id))
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	user, err := u.users.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: user}, time.Hour)
	utils.Success(ctx, user)
}

// CreateUser registers an account without issuing a token.
func (u *UserController) CreateUser(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required,min=1"`
		Password string `json:"password" binding:"required,min=6"`
		Avatar   string `json:"avatar"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := u.users.Create(ctx.Request.Context(), req.Email, req.Name, req.Password, req.Avatar)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.Success(ctx, user)
}
