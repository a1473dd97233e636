package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ratana/prodstack/database"
	"github.com/ratana/prodstack/errs"
	"github.com/ratana/prodstack/models"
)

type commentHandler struct {
	responder    Responder
	logger       zerolog.Logger
	commentRepo  *database.CommentRepo
	blogPostRepo *database.BlogPostRepo
}

func newCommentHandler(db database.Database) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		commentRepo:  db.CommentRepo(),
		blogPostRepo: db.BlogPostRepo(),
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

// addComment attaches a new comment to a blog post
func (h commentHandler) addComment() http.HandlerFunc {
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

		var request commentRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if strings.TrimSpace(request.Content) == "" {
			h.responder.WriteError(w, errs.NewValidationError("content", "content is required"))
			return
		}

		// the post must exist before we hang a comment off it
		if _, err := h.blogPostRepo.FindByID(blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		comment := models.Comment{
			Content:    request.Content,
			UserID:     callerID,
			BlogPostID: blogPostID,
		}

		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		savedComment, err := h.commentRepo.FindByID(comment.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "comment", err))
			return
		}

		h.responder.WriteCreated(w, mapCommentToResponse(*savedComment))
	}
}

// getComments lists a post's comments, newest first
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := parseIDParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comments, err := h.commentRepo.FindByBlogPostID(blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		responses := make([]CommentResponse, 0, len(comments))
		for _, comment := range comments {
			responses = append(responses, mapCommentToResponse(comment))
		}

		h.responder.WriteJSON(w, responses)
	}
}

// deleteComment removes a single comment. Only its author may do this.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		commentID, err := parseIDParam(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.commentRepo.FindByID(commentID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
			return
		}

		if comment.UserID != callerID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author may delete this comment"))
			return
		}

		if err := h.commentRepo.Delete(commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		h.responder.WriteJSON(w, MessageResponse{
			Status:  "success",
			Message: "comment deleted successfully",
		})
	}
}

func mapCommentToResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:               comment.ID,
		Content:          comment.Content,
		Username:         comment.User.Username,
		UserProfileImage: comment.User.ProfileImage,
		CreatedAt:        comment.CreatedAt,
	}
}
