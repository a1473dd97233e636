package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratana/prodstack/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByBlogPostID returns all comments on a blog post, newest first
func (r *CommentRepo) FindByBlogPostID(blogPostID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("blog_post_id = ?", blogPostID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// FindByID returns a comment by its ID
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a new comment
func (r *CommentRepo) Add(comment *models.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return r.db.Create(comment).Error
}

// CountByBlogPostID returns the number of comments on a blog post
func (r *CommentRepo) CountByBlogPostID(blogPostID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("blog_post_id = ?", blogPostID).
		Count(&count).Error
	return count, err
}

// Delete removes a comment by id
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
