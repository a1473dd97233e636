package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ratana/prodstack/database"
	"github.com/ratana/prodstack/models"
)

const testJWTSecret = "test-secret-not-for-production"

type testEnv struct {
	t          *testing.T
	router     *chi.Mux
	gormDB     *gorm.DB
	db         database.Database
	tokens     tokenIssuer
	profileDir string
	blogDir    string
}

// newTestEnv wires the full router against an in-memory database and
// throwaway upload directories.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// :memory: is per-connection, keep the pool on a single one
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(gormDB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	profileDir := t.TempDir()
	blogDir := t.TempDir()

	db := database.New(gormDB)
	router := newRouter(db, withConfig(map[string]string{
		"PROFILE_DIR": profileDir,
		"BLOG_DIR":    blogDir,
		"JWT_SECRET":  testJWTSecret,
	}))

	return &testEnv{
		t:          t,
		router:     router,
		gormDB:     gormDB,
		db:         db,
		tokens:     newTokenIssuer(testJWTSecret, time.Hour),
		profileDir: profileDir,
		blogDir:    blogDir,
	}
}

// createUser registers an account directly and returns it with a valid token
func (e *testEnv) createUser(username string) (*models.User, string) {
	e.t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "$2a$10$unused.in.these.tests",
	}
	if err := e.db.UserRepo().Add(user); err != nil {
		e.t.Fatalf("failed to create user %s: %v", username, err)
	}

	token, err := e.tokens.Issue(user.ID)
	if err != nil {
		e.t.Fatalf("failed to issue token for %s: %v", username, err)
	}
	return user, token
}

// do runs one request through the router
func (e *testEnv) do(method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	e.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// doJSON runs a request with a JSON payload
func (e *testEnv) doJSON(method, path, token string, payload any) *httptest.ResponseRecorder {
	e.t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		e.t.Fatalf("failed to marshal payload: %v", err)
	}
	return e.do(method, path, token, "application/json", bytes.NewReader(data))
}

// multipartBody builds a multipart form with string fields and named file
// parts. Files maps form field name to filename to content.
func multipartBody(t *testing.T, fields map[string]string, files map[string]map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	for field, parts := range files {
		for filename, content := range parts {
			part, err := writer.CreateFormFile(field, filename)
			if err != nil {
				t.Fatalf("failed to create file part %s: %v", filename, err)
			}
			if _, err := part.Write(content); err != nil {
				t.Fatalf("failed to write file part %s: %v", filename, err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to finish multipart body: %v", err)
	}
	return body, writer.FormDataContentType()
}

// createPost creates a blog post through the API and returns the response
func (e *testEnv) createPost(token, title, content string, images map[string][]byte) BlogPostResponse {
	e.t.Helper()

	var files map[string]map[string][]byte
	if len(images) > 0 {
		files = map[string]map[string][]byte{"images": images}
	}
	body, contentType := multipartBody(e.t, map[string]string{
		"title":   title,
		"content": content,
	}, files)

	rec := e.do(http.MethodPost, "/posts", token, contentType, body)
	if rec.Code != http.StatusCreated {
		e.t.Fatalf("failed to create post %q: status %d, body %s", title, rec.Code, rec.Body.String())
	}

	var response BlogPostResponse
	decodeBody(e.t, rec, &response)
	return response
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
