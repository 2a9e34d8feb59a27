package models

import "time"

// Post represents a blog post created by a user. Visibility is binary:
// public posts are readable by anyone, private posts only by their author.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsPublic  bool      `gorm:"default:true" json:"is_public"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
}
