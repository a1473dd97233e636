package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestAddAndListComments(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, aliceToken := env.createUser("alice")
	_, bobToken := env.createUser("bob")

	post := env.createPost(aliceToken, "post", "content", nil)

	rec := env.doJSON(http.MethodPost, "/posts/"+post.ID.String()+"/comments", bobToken, map[string]string{"content": "first!"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created CommentResponse
	decodeBody(t, rec, &created)
	if created.Content != "first!" || created.Username != "bob" {
		t.Fatalf("unexpected comment response: %+v", created)
	}

	rec = env.do(http.MethodGet, "/posts/"+post.ID.String()+"/comments", "", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var comments []CommentResponse
	decodeBody(t, rec, &comments)
	if len(comments) != 1 || comments[0].Content != "first!" {
		t.Fatalf("unexpected comment list: %+v", comments)
	}

	// the post response reflects the new comment
	rec = env.do(http.MethodGet, "/posts/"+post.ID.String(), "", "", nil)
	var postResponse BlogPostResponse
	decodeBody(t, rec, &postResponse)
	if postResponse.CommentCount != 1 {
		t.Fatalf("expected commentCount=1, got %d", postResponse.CommentCount)
	}
}

func TestAddCommentValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.createUser("alice")
	post := env.createPost(token, "post", "content", nil)

	rec := env.doJSON(http.MethodPost, "/posts/"+post.ID.String()+"/comments", token, map[string]string{"content": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank content, got %d", rec.Code)
	}

	rec = env.doJSON(http.MethodPost, "/posts/"+uuid.NewString()+"/comments", token, map[string]string{"content": "into the void"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing post, got %d", rec.Code)
	}

	rec = env.doJSON(http.MethodPost, "/posts/"+post.ID.String()+"/comments", "", map[string]string{"content": "anon"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a token, got %d", rec.Code)
	}
}

func TestDeleteCommentOwnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, aliceToken := env.createUser("alice")
	_, bobToken := env.createUser("bob")
	_, carolToken := env.createUser("carol")

	post := env.createPost(aliceToken, "post", "content", nil)

	rec := env.doJSON(http.MethodPost, "/posts/"+post.ID.String()+"/comments", bobToken, map[string]string{"content": "bob's comment"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed to create comment: %d", rec.Code)
	}
	var comment CommentResponse
	decodeBody(t, rec, &comment)

	// carol is authenticated but not the comment's author
	rec = env.do(http.MethodDelete, "/posts/comments/"+comment.ID.String(), carolToken, "", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-author delete, got %d", rec.Code)
	}

	rec = env.do(http.MethodGet, "/posts/"+post.ID.String()+"/comments", "", "", nil)
	var comments []CommentResponse
	decodeBody(t, rec, &comments)
	if len(comments) != 1 {
		t.Fatalf("comment vanished despite 403: %+v", comments)
	}

	rec = env.do(http.MethodDelete, "/posts/comments/"+comment.ID.String(), bobToken, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for author delete, got %d", rec.Code)
	}

	rec = env.do(http.MethodDelete, "/posts/comments/"+comment.ID.String(), bobToken, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for already-deleted comment, got %d", rec.Code)
	}
}
