package api

import (
	"time"

	"github.com/google/uuid"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler blogPostHandler
	commentHandler  commentHandler
	userHandler     userHandler
	fileHandler     fileHandler
}

// BlogPostResponse is a blog post denormalized for the client: author name
// and avatar from the user relation, image URLs, like/comment counts and
// whether the viewing user has liked it.
type BlogPostResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	AuthorUsername     string    `json:"authorUsername"`
	AuthorProfileImage *string   `json:"authorProfileImage,omitempty"`
	Images             []string  `json:"images"`
	LikeCount          int64     `json:"likeCount"`
	CommentCount       int64     `json:"commentCount"`
	LikedByCurrentUser bool      `json:"likedByCurrentUser"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CommentResponse is a comment denormalized with its author's name and avatar
type CommentResponse struct {
	ID               uuid.UUID `json:"id"`
	Content          string    `json:"content"`
	Username         string    `json:"username"`
	UserProfileImage *string   `json:"userProfileImage,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UserResponse is the public shape of a user account
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	ProfileImage *string   `json:"profileImage,omitempty"`
}

// MessageResponse carries a short human-readable outcome for mutations that
// return no entity
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TokenResponse is returned by login with the signed bearer token
type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}
