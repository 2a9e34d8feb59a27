package stores

import (
	"context"

	"gorm.io/gorm"

	"github.com/devlog/goblog/models"
)

// PostStore persists posts. Reads preload the author so handlers can return
// the author projection without a second query.
type PostStore interface {
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	ListPublic(ctx context.Context) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, post *models.Post) error
}

type gormPostStore struct {
	db *gorm.DB
}

// NewPostStore creates a gorm-backed PostStore.
func NewPostStore(db *gorm.DB) PostStore {
	return &gormPostStore{db: db}
}

func (s *gormPostStore) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *gormPostStore) ListPublic(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("is_public = ?", true).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *gormPostStore) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *gormPostStore) Create(ctx context.Context, post *models.Post) error {
	return translate(s.db.WithContext(ctx).Create(post).Error)
}

func (s *gormPostStore) Update(ctx context.Context, post *models.Post) error {
	return translate(s.db.WithContext(ctx).Save(post).Error)
}

func (s *gormPostStore) Delete(ctx context.Context, post *models.Post) error {
	return translate(s.db.WithContext(ctx).Delete(post).Error)
}
