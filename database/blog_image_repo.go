package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratana/prodstack/models"
)

type BlogImageRepo struct {
	db *gorm.DB
}

func NewBlogImageRepo(db *gorm.DB) *BlogImageRepo {
	return &BlogImageRepo{db}
}

// FindByBlogPostID returns all images attached to a blog post
func (r *BlogImageRepo) FindByBlogPostID(blogPostID uuid.UUID) ([]models.BlogImage, error) {
	var images []models.BlogImage
	err := r.db.Where("blog_post_id = ?", blogPostID).Find(&images).Error
	return images, err
}

// FindByID returns a single image row by its ID
func (r *BlogImageRepo) FindByID(id uuid.UUID) (*models.BlogImage, error) {
	var image models.BlogImage
	err := r.db.First(&image, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// Add inserts a new image row
func (r *BlogImageRepo) Add(image *models.BlogImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	return r.db.Create(image).Error
}

// Delete removes a single image row
func (r *BlogImageRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogImage{}, "id = ?", id).Error
}
