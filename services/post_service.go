package services

import (
	"context"
	"errors"

	"github.com/devlog/goblog/apperror"
	"github.com/devlog/goblog/models"
	"github.com/devlog/goblog/stores"
)

// PostService layers the ownership policy over the post store. Every
// operation resolves the post first, then applies the policy, then delegates.
type PostService struct {
	posts stores.PostStore
}

func NewPostService(posts stores.PostStore) *PostService {
	return &PostService{posts: posts}
}

// PostUpdate carries a partial update; nil fields are left unchanged.
type PostUpdate struct {
	Title    *string
	Content  *string
	IsPublic *bool
}

// Create stores a new post owned by authorID.
func (s *PostService) Create(ctx context.Context, authorID uint, title, content string, isPublic bool) (*models.Post, error) {
	post := models.Post{
		Title:    title,
		Content:  content,
		IsPublic: isPublic,
		AuthorID: authorID,
	}
	if err := s.posts.Create(ctx, &post); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to create post", err)
	}
	// Reload to pick up the author association for the response.
	created, err := s.posts.FindByID(ctx, post.ID)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to load post", err)
	}
	return created, nil
}

// ListPublic returns all public posts, newest first.
func (s *PostService) ListPublic(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.ListPublic(ctx)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to list posts", err)
	}
	return posts, nil
}

// ListByAuthor returns all posts by one user, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	posts, err := s.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to list user posts", err)
	}
	return posts, nil
}

// Get returns one post if the caller may see it. callerID is nil for
// anonymous callers; private posts are visible only to their author.
func (s *PostService) Get(ctx context.Context, id uint, callerID *uint) (*models.Post, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertReadable(post, callerID); err != nil {
		return nil, err
	}
	return post, nil
}

// Update applies a partial update if the caller owns the post.
func (s *PostService) Update(ctx context.Context, id uint, callerID uint, upd PostUpdate) (*models.Post, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertUpdatable(post, callerID); err != nil {
		return nil, err
	}

	if upd.Title != nil {
		post.Title = *upd.Title
	}
	if upd.Content != nil {
		post.Content = *upd.Content
	}
	if upd.IsPublic != nil {
		post.IsPublic = *upd.IsPublic
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, apperror.Wrap(apperror.Internal, "failed to update post", err)
	}
	return post, nil
}

// Delete removes the post if the caller owns it.
func (s *PostService) Delete(ctx context.Context, id uint, callerID uint) error {
	post, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := assertDeletable(post, callerID); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, post); err != nil {
		return apperror.Wrap(apperror.Internal, "failed to delete post", err)
	}
	return nil
}

func (s *PostService) load(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return nil, apperror.New(apperror.NotFound, "Post not found")
		}
		return nil, apperror.Wrap(apperror.Internal, "failed to load post", err)
	}
	return post, nil
}
