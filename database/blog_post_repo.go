package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ratana/prodstack/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns all blog posts, newest first
func (r *BlogPostRepo) FindAll() ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.Preload("Author").Preload("Images").
		Order("created_at DESC").
		Find(&blogPosts).Error
	return blogPosts, err
}

// FindByAuthorID returns all blog posts by one author, newest first
func (r *BlogPostRepo) FindByAuthorID(authorID uuid.UUID) ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.Preload("Author").Preload("Images").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&blogPosts).Error
	return blogPosts, err
}

// FindByID returns a blog post by its ID
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.Preload("Author").Preload("Images").
		First(&blogPost, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// AddWithImages inserts a new blog post and its image rows as one
// transactional unit. Either the post and all attachments commit, or none do.
func (r *BlogPostRepo) AddWithImages(blogPost *models.BlogPost, images []models.BlogImage) error {
	if blogPost.ID == uuid.Nil {
		blogPost.ID = uuid.New()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blogPost).Error; err != nil {
			return err
		}
		for i := range images {
			if images[i].ID == uuid.Nil {
				images[i].ID = uuid.New()
			}
			images[i].BlogPostID = blogPost.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithImages replaces title/content and appends new image rows in one
// transactional unit. UpdatedAt is bumped by the save.
func (r *BlogPostRepo) UpdateWithImages(blogPost *models.BlogPost, newImages []models.BlogImage) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(blogPost).Error; err != nil {
			return err
		}
		for i := range newImages {
			if newImages[i].ID == uuid.Nil {
				newImages[i].ID = uuid.New()
			}
			newImages[i].BlogPostID = blogPost.ID
			if err := tx.Create(&newImages[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a blog post and cascades to its images, likes and comments
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Select(clause.Associations).
		Delete(&models.BlogPost{ID: id}).Error
}
