package services

import (
	"github.com/devlog/goblog/apperror"
	"github.com/devlog/goblog/models"
)

// Post ownership policy: pure checks over a loaded post and an optional
// caller. Existence is checked before these run, so a missing post is
// reported as NotFound, never Forbidden.

// assertReadable allows public posts for anyone and private posts only for
// their author. callerID is nil for anonymous callers.
func assertReadable(post *models.Post, callerID *uint) error {
	if post.IsPublic {
		return nil
	}
	if callerID != nil && *callerID == post.AuthorID {
		return nil
	}
	return apperror.New(apperror.Forbidden, "This post is private")
}

// assertUpdatable allows mutation only by the post's author.
func assertUpdatable(post *models.Post, callerID uint) error {
	if post.AuthorID == callerID {
		return nil
	}
	return apperror.New(apperror.Forbidden, "You can only update your own posts")
}

// assertDeletable allows deletion only by the post's author.
func assertDeletable(post *models.Post, callerID uint) error {
	if post.AuthorID == callerID {
		return nil
	}
	return apperror.New(apperror.Forbidden, "You can only delete your own posts")
}
