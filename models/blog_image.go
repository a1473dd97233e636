package models

import "github.com/google/uuid"

// BlogImage is a stored image attached to exactly one blog post. Filename is
// the on-disk storage key, Filepath the public URL it is served under.
type BlogImage struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Filename   string    `json:"filename" db:"filename" gorm:"type:text;not null"`
	Filepath   string    `json:"filepath" db:"filepath" gorm:"type:text;not null"`
	BlogPostID uuid.UUID `json:"blogPostId" db:"blog_post_id" gorm:"type:uuid;not null;index:idx_blog_image_blog_post_id"`
}
