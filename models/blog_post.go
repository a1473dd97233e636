package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost is a post authored by a user. Images, likes and comments hang off
// the post and are removed with it.
type BlogPost struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title    string    `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	Content  string    `json:"content" db:"content" gorm:"type:text;not null"`
	AuthorID uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_blog_post_author_id"`

	Author   User        `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	Images   []BlogImage `json:"images,omitempty" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
	Likes    []Like      `json:"-" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
	Comments []Comment   `json:"-" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}
