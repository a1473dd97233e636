package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint, split by how much of a caller they need:
// none, optional (personalized reads) or required (mutations).
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/register", handlers.userHandler.register())
		r.Post("/auth/login", handlers.userHandler.login())

		r.Get("/files/profile/{filename}", handlers.fileHandler.getProfileImage())
		r.Get("/files/blog/{filename}", handlers.fileHandler.getBlogImage())
	})

	// Optionally authenticated reads
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticateOptional)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/posts", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/posts/{blogPostID}", handlers.blogPostHandler.getBlogPost())
		r.Get("/posts/{blogPostID}/comments", handlers.commentHandler.getComments())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/posts/mine", handlers.blogPostHandler.getMyBlogPosts())
		r.Post("/posts", handlers.blogPostHandler.createBlogPost())
		r.Put("/posts/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/posts/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
		r.Delete("/posts/images/{imageID}", handlers.blogPostHandler.deleteBlogImage())
		r.Post("/posts/{blogPostID}/like", handlers.blogPostHandler.toggleLike())

		r.Post("/posts/{blogPostID}/comments", handlers.commentHandler.addComment())
		r.Delete("/posts/comments/{commentID}", handlers.commentHandler.deleteComment())

		r.Get("/users/me", handlers.userHandler.me())
		r.Post("/users/profile-image", handlers.userHandler.uploadProfileImage())
	})
}
