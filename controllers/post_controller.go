package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devlog/goblog/apperror"
	"github.com/devlog/goblog/middleware"
	"github.com/devlog/goblog/services"
	"github.com/devlog/goblog/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, 401, 40100, "unauthorized")
		return
	}

	var req struct {
		Title    string `json:"title" binding:"required,min=1,max=200"`
		Content  string `json:"content" binding:"required,min=1"`
		IsPublic *bool  `json:"is_public"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Fail(ctx, apperror.NewValidation("invalid request payload", map[string]string{"title": "cannot be empty"}))
		return
	}
	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Fail(ctx, apperror.NewValidation("invalid request payload", map[string]string{"content": "cannot be empty"}))
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	post, err := p.posts.Create(ctx.Request.Context(), user.ID, title, content, isPublic)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	invalidatePostCaches(post.ID, user.ID)

	utils.Success(ctx, post)
}

// ListPublicPosts returns all public posts, newest first.
func (p *PostController) ListPublicPosts(ctx *gin.Context) {
	const cacheKey = "cache:posts:public"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.posts.ListPublic(ctx.Request.Context())
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: posts}, time.Hour)
	utils.Success(ctx, posts)
}

// ListUserPosts returns all posts created by a specific user.
func (p *PostController) ListUserPosts(ctx *gin.Context) {
	userID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	cacheKey := "cache:user:" + strconv.Itoa(int(userID)) + ":posts"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.posts.ListByAuthor(ctx.Request.Context(), userID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: posts}, time.Hour)
	utils.Success(ctx, posts)
}

// GetPost returns a single post, enforcing visibility for private posts.
// Identity is optional here: anonymous viewers see public posts only.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var callerID *uint
	if user, ok := middleware.CurrentUser(ctx); ok {
		callerID = &user.ID
	}

	// Public post payloads are viewer independent, so only those are cached.
	cacheKey := "cache:post:detail:" + strconv.Itoa(int(id))
	if callerID == nil {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	post, err := p.posts.Get(ctx.Request.Context(), id, callerID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	if post.IsPublic {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: post}, time.Hour)
	}
	utils.Success(ctx, post)
}

// UpdatePost allows the author to update their post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, 401, 40100, "unauthorized")
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Title    *string `json:"title" binding:"omitempty,min=1,max=200"`
		Content  *string `json:"content" binding:"omitempty,min=1"`
		IsPublic *bool   `json:"is_public"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	upd := services.PostUpdate{IsPublic: req.IsPublic}
	if req.Title != nil {
		title := utils.Sanitize(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Fail(ctx, apperror.NewValidation("invalid request payload", map[string]string{"title": "cannot be empty"}))
			return
		}
		upd.Title = &title
	}
	if req.Content != nil {
		content := utils.Sanitize(*req.Content)
		if content == "" {
			utils.Fail(ctx, apperror.NewValidation("invalid request payload", map[string]string{"content": "cannot be empty"}))
			return
		}
		upd.Content = &content
	}

	post, err := p.posts.Update(ctx.Request.Context(), id, user.ID, upd)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	invalidatePostCaches(post.ID, post.AuthorID)

	utils.Success(ctx, post)
}

// DeletePost allows the author to delete their post.
func (p *PostController) DeletePost(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, 401, 40100, "unauthorized")
		return
	}

	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := p.posts.Delete(ctx.Request.Context(), id, user.ID); err != nil {
		utils.Fail(ctx, err)
		return
	}

	invalidatePostCaches(id, user.ID)

	utils.Success(ctx, gin.H{"success": true})
}

func invalidatePostCaches(postID, authorID uint) {
	utils.InvalidateByPrefix("cache:posts:")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.Itoa(int(postID)))
	utils.InvalidateByPrefix("cache:user:" + strconv.Itoa(int(authorID)) + ":posts")
}
