package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ratana/prodstack/database"
	"github.com/ratana/prodstack/errs"
	"github.com/ratana/prodstack/models"
	"github.com/ratana/prodstack/services"
)

const (
	profileFileRoute  = "/files/profile/"
	minPasswordLength = 8
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	storage   services.FileStorage
	tokens    tokenIssuer
}

func newUserHandler(db database.Database, storage services.FileStorage, tokens tokenIssuer) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  db.UserRepo(),
		storage:   storage,
		tokens:    tokens,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// register creates a new account and returns a token for it
func (h userHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if strings.TrimSpace(request.Username) == "" {
			h.responder.WriteError(w, errs.NewValidationError("username", "username is required"))
			return
		}
		if len(request.Password) < minPasswordLength {
			h.responder.WriteError(w, errs.NewValidationError("password", "password must be at least 8 characters"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		user := models.User{
			Username:     request.Username,
			PasswordHash: string(hash),
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteCreated(w, TokenResponse{
			Token: token,
			User:  mapUserToResponse(user),
		})
	}
}

// login verifies credentials and returns a signed bearer token
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByUsername(request.Username)
		if err != nil {
			// same answer for unknown user and bad password
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid username or password"))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to issue token"))
			return
		}

		h.responder.WriteJSON(w, TokenResponse{
			Token: token,
			User:  mapUserToResponse(*user),
		})
	}
}

// me returns the authenticated caller's account
func (h userHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		user, err := h.userRepo.FindByID(callerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		h.responder.WriteJSON(w, mapUserToResponse(*user))
	}
}

// uploadProfileImage stores a new profile image for the caller, removing the
// old file best-effort, and persists the new public path.
func (h userHandler) uploadProfileImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthenticatedError("no authenticated caller"))
			return
		}

		user, err := h.userRepo.FindByID(callerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart form"))
			return
		}

		file, fileHeader, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("image", "an image file is required"))
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot read uploaded file"))
			return
		}

		// best effort: a stale old file never fails the upload
		if user.ProfileImage != nil {
			oldFilename := strings.TrimPrefix(*user.ProfileImage, profileFileRoute)
			if err := h.storage.Delete(oldFilename, h.storage.ProfileDir); err != nil {
				h.logger.Warn().Err(err).Str("filename", oldFilename).Msg("failed to delete old profile image")
			}
		}

		filename, err := h.storage.StoreProfileImage(content, fileHeader.Filename)
		if err != nil {
			h.responder.WriteError(w, errs.NewIOError("store profile image", err))
			return
		}

		filepath := profileFileRoute + filename
		user.ProfileImage = &filepath

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"profileImage": filepath,
		})
	}
}

func mapUserToResponse(user models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		ProfileImage: user.ProfileImage,
	}
}
