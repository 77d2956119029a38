package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBook(t *testing.T, app *fiber.App, token string, body map[string]any) map[string]any {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/books/", body, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)["book"].(map[string]any)
}

func TestBookCRUD(t *testing.T) {
	_, app := newTestServer(t)

	token, _ := signupUser(t, app, "Reader", "reader@example.com", "longenough1")

	book := createBook(t, app, token, map[string]any{
		"title": "Braiding Sweetgrass", "author": "Robin Wall Kimmerer", "status": "reading",
	})
	id := int(book["id"].(float64))

	// partial update leaves unset fields alone
	resp, err := app.Test(jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/books/%d", id), map[string]any{"status": "finished", "rating": 5}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)["book"].(map[string]any)
	assert.Equal(t, "finished", updated["status"])
	assert.Equal(t, "Braiding Sweetgrass", updated["title"])

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/books/%d", id), nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBookValidation(t *testing.T) {
	_, app := newTestServer(t)

	token, _ := signupUser(t, app, "Reader", "reader@example.com", "longenough1")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"author": "Someone"}},
		{"bad status", map[string]any{"title": "X", "status": "devoured"}},
		{"rating out of range", map[string]any{"title": "X", "rating": 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/books/", tt.body, token))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestBookOwnershipEnforced(t *testing.T) {
	_, app := newTestServer(t)

	ownerToken, _ := signupUser(t, app, "Owner", "owner@example.com", "longenough1")
	otherToken, _ := signupUser(t, app, "Other", "other@example.com", "longenough1")

	book := createBook(t, app, ownerToken, map[string]any{"title": "Mine"})
	id := int(book["id"].(float64))

	// another user's update and delete both 404 rather than 403, so the
	// response does not confirm the resource exists
	resp, err := app.Test(jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/books/%d", id), map[string]any{"title": "Stolen"}, otherToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), nil, otherToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAnonymousBookProjection(t *testing.T) {
	_, app := newTestServer(t)

	authorToken, author := signupUser(t, app, "Writer", "writer@example.com", "longenough1")
	viewerToken, _ := signupUser(t, app, "Viewer", "viewer@example.com", "longenough1")
	alias := author["alias"].(string)

	book := createBook(t, app, authorToken, map[string]any{
		"title": "Quiet Thoughts", "is_anonymous": true,
	})
	id := int(book["id"].(float64))

	// a different viewer sees the alias and no user id
	resp, err := app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/books/%d", id), nil, viewerToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody(t, resp)["book"].(map[string]any)

	postedBy := got["posted_by"].(map[string]any)
	assert.Equal(t, alias, postedBy["display_name"])
	assert.Equal(t, true, postedBy["hide_avatar"])
	_, hasUserID := got["user_id"]
	assert.False(t, hasUserID, "anonymous items must not carry the author's user id")

	// the author still sees their own user id
	resp, err = app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/books/%d", id), nil, authorToken))
	require.NoError(t, err)
	got = decodeBody(t, resp)["book"].(map[string]any)
	_, hasUserID = got["user_id"]
	assert.True(t, hasUserID)

	// the embedded user record never reaches the wire
	_, hasUser := got["user"]
	assert.False(t, hasUser)
}

func TestNamedBookProjection(t *testing.T) {
	_, app := newTestServer(t)

	authorToken, _ := signupUser(t, app, "Writer", "writer@example.com", "longenough1")
	viewerToken, _ := signupUser(t, app, "Viewer", "viewer@example.com", "longenough1")

	book := createBook(t, app, authorToken, map[string]any{"title": "Open Book"})
	id := int(book["id"].(float64))

	resp, err := app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/books/%d", id), nil, viewerToken))
	require.NoError(t, err)
	got := decodeBody(t, resp)["book"].(map[string]any)

	postedBy := got["posted_by"].(map[string]any)
	assert.Equal(t, "Writer", postedBy["display_name"])
	_, hasUserID := got["user_id"]
	assert.True(t, hasUserID)
}
