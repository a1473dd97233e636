package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns blog posts, comments and likes
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	ProfileImage *string   `json:"profileImage,omitempty" db:"profile_image" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
}
