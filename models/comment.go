package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user's comment on a blog post.
type Comment struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Content    string    `json:"content" db:"content" gorm:"type:text;not null"`
	UserID     uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;index:idx_comment_user_id"`
	BlogPostID uuid.UUID `json:"blogPostId" db:"blog_post_id" gorm:"type:uuid;not null;index:idx_comment_blog_post_id"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`

	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
}
