package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ratana/prodstack/database"
	"github.com/ratana/prodstack/errs"
	"github.com/ratana/prodstack/models"
	"github.com/ratana/prodstack/services"
)

const (
	maxUploadBytes = 32 << 20 // per-request multipart memory budget
	maxTitleLength = 200

	blogFileRoute = "/files/blog/"
)

type blogPostHandler struct {
	responder     Responder
	logger        zerolog.Logger
	blogPostRepo  *database.BlogPostRepo
	blogImageRepo *database.BlogImageRepo
	likeRepo      *database.LikeRepo
	commentRepo   *database.CommentRepo
	storage       services.FileStorage
}

func newBlogPostHandler(db database.Database, storage services.FileStorage) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		blogPostRepo:  db.BlogPostRepo(),
		blogImageRepo: db.BlogImageRepo(),
		likeRepo:      db.LikeRepo(),
		commentRepo:   db.CommentRepo(),
		storage:       storage,
	}
}

// getAllBlogPosts retrieves all blog posts, newest first, personalized with
// the viewer's like state when a caller is authenticated.
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID := ctxGetUserIDOrNil(r.Context())

		blogPosts, err := h.blogPostRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}

		responses := make([]BlogPostResponse, 0, len(blogPosts))
		for _, blogPost := range blogPosts {
			response, err := h.mapToResponse(blogPost, viewerID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			responses = append(responses, response)
		}

		h.responder.WriteJSON(w, responses)
	}
}

// getMyBlogPosts retrieves the authenticated caller's posts, newest first
func (h blogPostHandler) getMyBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		blogPosts, err := h.blogPostRepo.FindByAuthorID(callerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}

		responses := make([]BlogPostResponse, 0, len(blogPosts))
		for _, blogPost := range blogPosts {
			response, err := h.mapToResponse(blogPost, &callerID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			responses = append(responses, response)
		}

		h.responder.WriteJSON(w, responses)
	}
}

// getBlogPost retrieves a specific blog post by ID
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := parseIDParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		viewerID := ctxGetUserIDOrNil(r.Context())

		blogPost, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		response, err := h.mapToResponse(blogPost, viewerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, response)
	}
}

// createBlogPost creates a new blog post from a multipart form carrying
// title, content and zero or more images. The post and all its image rows
// commit as one unit; image files are written first and may be orphaned if
// the commit fails.
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		title := r.FormValue("title")
		content := r.FormValue("content")
		if err := validateBlogPostFields(title, content); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		images, err := h.storeUploadedImages(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost := models.BlogPost{
			Title:    title,
			Content:  content,
			AuthorID: callerID,
		}

		if err := h.blogPostRepo.AddWithImages(&blogPost, images); err != nil {
			h.cleanupStoredImages(images)
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		createdBlogPost, err := h.blogPostRepo.FindByID(blogPost.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "blog post", err))
			return
		}

		response, err := h.mapToResponse(createdBlogPost, &callerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, response)
	}
}

// updateBlogPost replaces title/content and appends any newly uploaded
// images. Only the post's author may update it; removing an image goes
// through deleteBlogImage instead of replacing the set here.
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		blogPostID, err := parseIDParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		if blogPost.AuthorID != callerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may update this blog post"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		title := r.FormValue("title")
		content := r.FormValue("content")
		if err := validateBlogPostFields(title, content); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		newImages, err := h.storeUploadedImages(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost.Title = title
		blogPost.Content = content

		if err := h.blogPostRepo.UpdateWithImages(blogPost, newImages); err != nil {
			h.cleanupStoredImages(newImages)
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}

		updatedBlogPost, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "blog post", err))
			return
		}

		response, err := h.mapToResponse(updatedBlogPost, &callerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, response)
	}
}

// deleteBlogPost deletes a blog post, its image files and, via cascade, all
// of its image, like and comment rows. Author only.
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		blogPostID, err := parseIDParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		if blogPost.AuthorID != callerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may delete this blog post"))
			return
		}

		images, err := h.blogImageRepo.FindByBlogPostID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog images", err))
			return
		}
		for _, image := range images {
			if err := h.storage.Delete(image.Filename, h.storage.BlogDir); err != nil {
				h.responder.WriteError(w, errs.NewIOError("delete blog image file", err))
				return
			}
		}

		if err := h.blogPostRepo.Delete(blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, MessageResponse{
			Status:  "success",
			Message: "blog post deleted successfully",
		})
	}
}

// deleteBlogImage removes a single image attachment: the backing file first,
// then the row. Only the owning post's author may do this.
func (h blogPostHandler) deleteBlogImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		imageID, err := parseIDParam(r, "imageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		image, err := h.blogImageRepo.FindByID(imageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog image", err))
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(image.BlogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		if blogPost.AuthorID != callerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may delete this image"))
			return
		}

		if err := h.storage.Delete(image.Filename, h.storage.BlogDir); err != nil {
			h.responder.WriteError(w, errs.NewIOError("delete blog image file", err))
			return
		}

		if err := h.blogImageRepo.Delete(imageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog image", err))
			return
		}

		h.responder.WriteJSON(w, MessageResponse{
			Status:  "success",
			Message: "image deleted successfully",
		})
	}
}

// toggleLike flips the caller's like on a blog post
func (h blogPostHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		blogPostID, err := parseIDParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// 404 before toggling so a bogus post ID doesn't look like an un-like
		if _, err := h.blogPostRepo.FindByID(blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		liked, err := h.likeRepo.Toggle(callerID, blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("toggle like on", "blog post", err))
			return
		}

		message := "post unliked"
		if liked {
			message = "post liked"
		}

		h.responder.WriteJSON(w, MessageResponse{
			Status:  "success",
			Message: message,
		})
	}
}

// mapToResponse denormalizes a blog post for the client. The viewer ID may
// be nil for anonymous callers, in which case likedByCurrentUser is false.
func (h blogPostHandler) mapToResponse(blogPost *models.BlogPost, viewerID *uuid.UUID) (BlogPostResponse, error) {
	imagePaths := make([]string, 0, len(blogPost.Images))
	for _, image := range blogPost.Images {
		imagePaths = append(imagePaths, image.Filepath)
	}

	likeCount, err := h.likeRepo.CountByBlogPostID(blogPost.ID)
	if err != nil {
		return BlogPostResponse{}, wrapDatabaseError("count likes for", "blog post", err)
	}

	commentCount, err := h.commentRepo.CountByBlogPostID(blogPost.ID)
	if err != nil {
		return BlogPostResponse{}, wrapDatabaseError("count comments for", "blog post", err)
	}

	likedByViewer := false
	if viewerID != nil {
		likedByViewer, err = h.likeRepo.ExistsByUserAndBlogPost(*viewerID, blogPost.ID)
		if err != nil {
			return BlogPostResponse{}, wrapDatabaseError("check like for", "blog post", err)
		}
	}

	return BlogPostResponse{
		ID:                 blogPost.ID,
		Title:              blogPost.Title,
		Content:            blogPost.Content,
		AuthorUsername:     blogPost.Author.Username,
		AuthorProfileImage: blogPost.Author.ProfileImage,
		Images:             imagePaths,
		LikeCount:          likeCount,
		CommentCount:       commentCount,
		LikedByCurrentUser: likedByViewer,
		CreatedAt:          blogPost.CreatedAt,
		UpdatedAt:          blogPost.UpdatedAt,
	}, nil
}

// storeUploadedImages writes every file under the "images" form field and
// returns the rows to attach. Files hit disk before any row commits.
func (h blogPostHandler) storeUploadedImages(r *http.Request) ([]models.BlogImage, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	fileHeaders := r.MultipartForm.File["images"]
	images := make([]models.BlogImage, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, errs.NewBadRequestError(fmt.Sprintf("cannot read uploaded file %q", fileHeader.Filename))
		}

		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, errs.NewBadRequestError(fmt.Sprintf("cannot read uploaded file %q", fileHeader.Filename))
		}

		filename, err := h.storage.StoreBlogImage(content, fileHeader.Filename)
		if err != nil {
			return nil, errs.NewIOError("store blog image", err)
		}

		images = append(images, models.BlogImage{
			Filename: filename,
			Filepath: blogFileRoute + filename,
		})
	}
	return images, nil
}

// cleanupStoredImages removes files written for an attachment batch whose
// rows never committed. Best effort, failures are only logged.
func (h blogPostHandler) cleanupStoredImages(images []models.BlogImage) {
	for _, image := range images {
		if err := h.storage.Delete(image.Filename, h.storage.BlogDir); err != nil {
			h.logger.Warn().Err(err).Str("filename", image.Filename).Msg("failed to clean up stored image")
		}
	}
}

func validateBlogPostFields(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValidationError("title", "title is required")
	}
	if len(title) > maxTitleLength {
		return errs.NewValidationError("title", fmt.Sprintf("title must not exceed %d characters", maxTitleLength))
	}
	if strings.TrimSpace(content) == "" {
		return errs.NewValidationError("content", "content is required")
	}
	return nil
}

// parseIDParam reads a UUID path parameter off the chi route
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	idStr := chi.URLParam(r, name)
	if idStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
