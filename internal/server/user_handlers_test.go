package server

import (
	"net/http"
	"testing"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_OwnerSeesHiddenPosts(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.user(t, "owner")
	_, visitorToken := env.user(t, "visitor")
	public := env.post(t, owner, "public")
	draft := env.post(t, owner, "draft", unpublished())
	future := env.post(t, owner, "future", at(testNow.Add(48*time.Hour)))

	profile := func(token string) service.Profile {
		resp := env.do(t, http.MethodGet, "/api/profile/owner", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var p service.Profile
		decode(t, resp, &p)
		return p
	}

	own := profile(ownerToken)
	assert.True(t, own.IsOwner)
	assert.Equal(t, "owner@example.com", own.User.Email)
	ownIDs := make([]uint, 0, len(own.Posts.Items))
	for _, p := range own.Posts.Items {
		ownIDs = append(ownIDs, p.ID)
	}
	assert.ElementsMatch(t, []uint{public.ID, draft.ID, future.ID}, ownIDs)

	for _, token := range []string{"", visitorToken} {
		seen := profile(token)
		assert.False(t, seen.IsOwner)
		assert.Empty(t, seen.User.Email)
		require.Len(t, seen.Posts.Items, 1)
		assert.Equal(t, public.ID, seen.Posts.Items[0].ID)
	}

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/profile/nobody", nil, "").StatusCode)
}

func TestMyProfile(t *testing.T) {
	env := newTestEnv(t)
	me, token := env.user(t, "me")
	env.user(t, "taken")

	t.Run("anonymous is sent to login", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/profile", nil, "")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("own record", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/api/profile", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var user models.User
		decode(t, resp, &user)
		assert.Equal(t, me.ID, user.ID)
		assert.Equal(t, "me@example.com", user.Email)
	})

	t.Run("duplicate username", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/api/profile", map[string]string{
			"username": "taken", "email": "me@example.com",
		}, token)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body models.ErrorResponse
		decode(t, resp, &body)
		assert.Contains(t, body.Fields, "username")
	})

	t.Run("edit redirects to new profile", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/api/profile", map[string]string{
			"username": "renamed", "first_name": "Re", "last_name": "Named", "email": "renamed@example.com",
		}, token)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/api/profile/renamed", resp.Header.Get("Location"))

		var stored models.User
		require.NoError(t, env.db.First(&stored, me.ID).Error)
		assert.Equal(t, "renamed", stored.Username)
		assert.Equal(t, "Named", stored.LastName)
		assert.Equal(t, "renamed@example.com", stored.Email)
	})
}
