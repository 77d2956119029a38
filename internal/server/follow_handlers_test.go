package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userID(user map[string]any) int {
	return int(user["id"].(float64))
}

func TestFollowFlow(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", "alice@example.com", "longenough1")
	_, bob := signupUser(t, app, "Bob", "bob@example.com", "longenough1")
	bobID := userID(bob)

	// follow an open account: approved immediately
	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/users/%d/follow", bobID), nil, aliceToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "approved", body["status"])

	// following twice does not create a second edge
	resp, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/users/%d/follow", bobID), nil, aliceToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/users/%d/followers", bobID), nil, aliceToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	followers := decodeBody(t, resp)["followers"].([]any)
	assert.Len(t, followers, 1)

	// unfollow removes the edge
	resp, err = app.Test(jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/users/%d/follow", bobID), nil, aliceToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/users/%d/followers", bobID), nil, aliceToken))
	require.NoError(t, err)
	followers, _ = decodeBody(t, resp)["followers"].([]any)
	assert.Empty(t, followers)
}

func TestFollowSelfRejected(t *testing.T) {
	_, app := newTestServer(t)

	token, me := signupUser(t, app, "Alice", "alice@example.com", "longenough1")

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/users/%d/follow", userID(me)), nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollowApprovalFlow(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", "alice@example.com", "longenough1")
	bobToken, bob := signupUser(t, app, "Bob", "bob@example.com", "longenough1")
	bobID := userID(bob)

	// bob requires approval for new followers
	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/settings/privacy", map[string]bool{
		"profile_public":          true,
		"require_follow_approval": true,
		"activity_visible":        true,
	}, bobToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// alice's follow starts pending
	resp, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/users/%d/follow", bobID), nil, aliceToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", decodeBody(t, resp)["status"])

	// bob sees the incoming request
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/follows/requests/", nil, bobToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	requests := decodeBody(t, resp)["requests"].([]any)
	require.Len(t, requests, 1)
	edgeID := int(requests[0].(map[string]any)["id"].(float64))

	// alice cannot approve a request aimed at bob
	resp, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/follows/requests/%d/approve", edgeID), nil, aliceToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// bob approves; alice now shows among bob's followers
	resp, err = app.Test(jsonRequest(t, http.MethodPost,
		fmt.Sprintf("/api/follows/requests/%d/approve", edgeID), nil, bobToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/users/%d/followers", bobID), nil, aliceToken))
	require.NoError(t, err)
	followers := decodeBody(t, resp)["followers"].([]any)
	assert.Len(t, followers, 1)
}

func TestMutualConnections(t *testing.T) {
	_, app := newTestServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", "alice@example.com", "longenough1")
	bobToken, bob := signupUser(t, app, "Bob", "bob@example.com", "longenough1")
	_, carol := signupUser(t, app, "Carol", "carol@example.com", "longenough1")
	carolID := userID(carol)

	for _, token := range []string{aliceToken, bobToken} {
		resp, err := app.Test(jsonRequest(t, http.MethodPost,
			fmt.Sprintf("/api/users/%d/follow", carolID), nil, token))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(jsonRequest(t, http.MethodGet,
		fmt.Sprintf("/api/users/%d/mutual", userID(bob)), nil, aliceToken))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mutual := decodeBody(t, resp)["mutual"].([]any)
	require.Len(t, mutual, 1)
	assert.EqualValues(t, carolID, mutual[0].(map[string]any)["id"].(float64))
}

func TestSuggestedUsersFallback(t *testing.T) {
	_, app := newTestServer(t)

	tokens := signupN(t, app, 3)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/preview", nil, tokens[0]))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	suggested := decodeBody(t, resp)["suggested"].([]any)
	assert.Len(t, suggested, 2)
}
