package database

import (
	"gorm.io/gorm"

	"github.com/ratana/prodstack/models"
)

type Database struct {
	userRepo      *UserRepo
	blogPostRepo  *BlogPostRepo
	blogImageRepo *BlogImageRepo
	likeRepo      *LikeRepo
	commentRepo   *CommentRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:      NewUserRepo(db),
		blogPostRepo:  NewBlogPostRepo(db),
		blogImageRepo: NewBlogImageRepo(db),
		likeRepo:      NewLikeRepo(db),
		commentRepo:   NewCommentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogImageRepo() *BlogImageRepo {
	return d.blogImageRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

// Migrate creates or updates the five tables backing the blog.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.BlogPost{},
		&models.BlogImage{},
		&models.Like{},
		&models.Comment{},
	)
}
