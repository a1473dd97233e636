package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestToggleLikeVisibilityPerViewer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, aliceToken := env.createUser("alice")
	_, bobToken := env.createUser("bob")
	_, carolToken := env.createUser("carol")

	post := env.createPost(bobToken, "Bob's post", "content", nil)

	rec := env.do(http.MethodPost, "/posts/"+post.ID.String()+"/like", aliceToken, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed to toggle like: %d: %s", rec.Code, rec.Body.String())
	}

	// the liker sees their own like
	rec = env.do(http.MethodGet, "/posts/"+post.ID.String(), aliceToken, "", nil)
	var asAlice BlogPostResponse
	decodeBody(t, rec, &asAlice)
	if !asAlice.LikedByCurrentUser || asAlice.LikeCount != 1 {
		t.Fatalf("alice's view wrong: liked=%v count=%d", asAlice.LikedByCurrentUser, asAlice.LikeCount)
	}

	// a third user sees the count but not the flag
	rec = env.do(http.MethodGet, "/posts/"+post.ID.String(), carolToken, "", nil)
	var asCarol BlogPostResponse
	decodeBody(t, rec, &asCarol)
	if asCarol.LikedByCurrentUser || asCarol.LikeCount != 1 {
		t.Fatalf("carol's view wrong: liked=%v count=%d", asCarol.LikedByCurrentUser, asCarol.LikeCount)
	}

	// anonymous viewers never see the flag
	rec = env.do(http.MethodGet, "/posts/"+post.ID.String(), "", "", nil)
	var asAnon BlogPostResponse
	decodeBody(t, rec, &asAnon)
	if asAnon.LikedByCurrentUser || asAnon.LikeCount != 1 {
		t.Fatalf("anonymous view wrong: liked=%v count=%d", asAnon.LikedByCurrentUser, asAnon.LikeCount)
	}
}

func TestToggleLikeTwiceReturnsToOriginalState(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, aliceToken := env.createUser("alice")

	post := env.createPost(aliceToken, "self-likeable", "content", nil)

	for i := 0; i < 2; i++ {
		rec := env.do(http.MethodPost, "/posts/"+post.ID.String()+"/like", aliceToken, "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle failed: %d", rec.Code)
		}
	}

	rec := env.do(http.MethodGet, "/posts/"+post.ID.String(), aliceToken, "", nil)
	var response BlogPostResponse
	decodeBody(t, rec, &response)
	if response.LikedByCurrentUser || response.LikeCount != 0 {
		t.Fatalf("expected pair of toggles to cancel out: liked=%v count=%d",
			response.LikedByCurrentUser, response.LikeCount)
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.createUser("alice")

	rec := env.do(http.MethodPost, "/posts/"+uuid.NewString()+"/like", token, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing post, got %d", rec.Code)
	}
}

func TestToggleLikeRequiresAuth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := env.createUser("alice")
	post := env.createPost(token, "post", "content", nil)

	rec := env.do(http.MethodPost, "/posts/"+post.ID.String()+"/like", "", "", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a token, got %d", rec.Code)
	}
}
