package api

import (
	"github.com/ratana/prodstack/database"
	"github.com/ratana/prodstack/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, storage services.FileStorage, tokens tokenIssuer) *routeHandlers {
	return &routeHandlers{
		blogPostHandler: newBlogPostHandler(db, storage),
		commentHandler:  newCommentHandler(db),
		userHandler:     newUserHandler(db, storage, tokens),
		fileHandler:     newFileHandler(storage),
	}
}
