package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records that a user liked a blog post. The composite unique index is
// what keeps the pair unique under concurrent toggles.
type Like struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID     uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_blog_post"`
	BlogPostID uuid.UUID `json:"blogPostId" db:"blog_post_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_blog_post;index:idx_like_blog_post_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
}
