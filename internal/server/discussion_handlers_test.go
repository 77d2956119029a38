package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscussionAndRepliesFlow(t *testing.T) {
	_, app := newTestServer(t)

	token, _ := signupUser(t, app, "Poster", "poster@example.com", "longenough1")
	replierToken, _ := signupUser(t, app, "Replier", "replier@example.com", "longenough1")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/discussions/", map[string]any{
		"room": "music-room", "title": "Albums for rainy days", "body": "What are you listening to?",
	}, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	discussion := decodeBody(t, resp)["discussion"].(map[string]any)
	id := int(discussion["id"].(float64))

	resp, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/discussions/%d/replies", id), map[string]any{
			"body": "Blue by Joni Mitchell, always.",
		}, replierToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	reply := decodeBody(t, resp)["reply"].(map[string]any)
	replyID := int(reply["id"].(float64))

	resp, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/discussions/%d/replies", id), nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	replies := decodeBody(t, resp)["replies"].([]any)
	require.Len(t, replies, 1)

	// the reply count on the thread reflects the new reply
	resp, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/discussions/%d", id), nil, token))
	require.NoError(t, err)
	got := decodeBody(t, resp)["discussion"].(map[string]any)
	assert.EqualValues(t, 1, got["replies_count"])

	// only the reply's author can delete it
	resp, err = app.Test(jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/discussions/%d/replies/%d", id, replyID), nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/discussions/%d/replies/%d", id, replyID), nil, replierToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateDiscussionUnknownRoom(t *testing.T) {
	_, app := newTestServer(t)

	token, _ := signupUser(t, app, "Poster", "poster@example.com", "longenough1")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/discussions/", map[string]any{
		"room": "secret-lair", "title": "Hello",
	}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReplyToMissingDiscussion(t *testing.T) {
	_, app := newTestServer(t)

	token, _ := signupUser(t, app, "Poster", "poster@example.com", "longenough1")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/discussions/999/replies",
		map[string]any{"body": "hello?"}, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListDiscussionsByRoom(t *testing.T) {
	_, app := newTestServer(t)

	token, _ := signupUser(t, app, "Poster", "poster@example.com", "longenough1")

	for _, d := range []map[string]any{
		{"room": "book-club", "title": "March pick"},
		{"room": "music-room", "title": "Rainy day albums"},
	} {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/discussions/", d, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/discussions/?room=music-room", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	discussions := decodeBody(t, resp)["discussions"].([]any)
	require.Len(t, discussions, 1)
	assert.Equal(t, "Rainy day albums", discussions[0].(map[string]any)["title"])

	// no room parameter falls back to the default room
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/discussions/", nil, token))
	require.NoError(t, err)
	discussions = decodeBody(t, resp)["discussions"].([]any)
	require.Len(t, discussions, 1)
	assert.Equal(t, "March pick", discussions[0].(map[string]any)["title"])

	// unknown room is rejected
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/discussions/?room=nope", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
