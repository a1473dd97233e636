package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ratana/prodstack/models"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Toggle flips the like state for a (user, post) pair and reports the new
// state. Two concurrent toggles can both observe "absent" and race on the
// insert; the composite unique index plus OnConflict-DoNothing makes the
// loser a no-op instead of a duplicate row or a hard failure.
func (r *LikeRepo) Toggle(userID, blogPostID uuid.UUID) (liked bool, err error) {
	res := r.db.Where("user_id = ? AND blog_post_id = ?", userID, blogPostID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := models.Like{
		ID:         uuid.New(),
		UserID:     userID,
		BlogPostID: blogPostID,
	}
	err = r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByBlogPostID returns the number of likes on a blog post
func (r *LikeRepo) CountByBlogPostID(blogPostID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("blog_post_id = ?", blogPostID).
		Count(&count).Error
	return count, err
}

// ExistsByUserAndBlogPost reports whether the user has liked the blog post
func (r *LikeRepo) ExistsByUserAndBlogPost(userID, blogPostID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND blog_post_id = ?", userID, blogPostID).
		Count(&count).Error
	return count > 0, err
}
