package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestServeBlogImage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.createUser("alice")

	post := env.createPost(token, "post", "content", map[string][]byte{"a.jpg": []byte("jpeg bytes here")})
	if len(post.Images) != 1 {
		t.Fatalf("expected one image, got %v", post.Images)
	}

	rec := env.do(http.MethodGet, post.Images[0], "", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", got)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Disposition"), "inline") {
		t.Fatalf("expected inline disposition, got %q", rec.Header().Get("Content-Disposition"))
	}
	if rec.Body.String() != "jpeg bytes here" {
		t.Fatalf("served content mismatch: %q", rec.Body.String())
	}
}

func TestServeMissingFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/files/blog/does-not-exist.jpg", "", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = env.do(http.MethodGet, "/files/profile/does-not-exist.jpg", "", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestServeRejectsTraversal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/files/blog/..", "", "", nil)
	if rec.Code == http.StatusOK {
		t.Fatalf("expected traversal attempt to fail, got 200")
	}

	rec = env.do(http.MethodGet, "/files/blog/%2e%2e%2fsecret", "", "", nil)
	if rec.Code == http.StatusOK {
		t.Fatalf("expected encoded traversal attempt to fail, got 200")
	}
}
