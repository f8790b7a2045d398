package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContent_RequiresSession(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/user-content"},
		{http.MethodGet, "/api/user-content/status/watching"},
		{http.MethodPost, "/api/user-content"},
		{http.MethodPatch, "/api/user-content/1"},
	} {
		w := env.client(t).do(req.method, req.path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", req.method, req.path)
	}
}

func TestUserContent_TrackingLifecycle(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	c := env.client(t)
	c.signup("alice")
	id := c.createContent("Dune", "movie")

	// Add to watchlist.
	w := c.do(http.MethodPost, "/api/user-content", gin.H{"contentId": id, "status": "watchlist"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	record := decode(t, w)
	recordID := int64(record["id"].(float64))
	assert.Equal(t, "watchlist", record["status"])

	// Tracking the same title again merges instead of duplicating.
	w = c.do(http.MethodPost, "/api/user-content", gin.H{"contentId": id, "status": "watching"})
	require.Equal(t, http.StatusOK, w.Code)
	merged := decode(t, w)
	assert.Equal(t, recordID, int64(merged["id"].(float64)))
	assert.Equal(t, "watching", merged["status"])

	items := decodeList(t, c.do(http.MethodGet, "/api/user-content", nil))
	require.Len(t, items, 1)
	content := items[0]["content"].(map[string]any)
	assert.Equal(t, "Dune", content["title"])

	// Finish it with a rating via partial update.
	w = c.do(http.MethodPatch, fmt.Sprintf("/api/user-content/%d", recordID), gin.H{
		"status": "watched",
		"rating": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	finished := decode(t, w)
	assert.Equal(t, "watched", finished["status"])
	assert.Equal(t, float64(5), finished["rating"])

	watched := decodeList(t, c.do(http.MethodGet, "/api/user-content/status/watched", nil))
	require.Len(t, watched, 1)
	empty := decodeList(t, c.do(http.MethodGet, "/api/user-content/status/watching", nil))
	assert.Empty(t, empty)
}

func TestUserContentUpsert_UnknownContent(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	c := env.client(t)
	c.signup("alice")

	w := c.do(http.MethodPost, "/api/user-content", gin.H{"contentId": 999, "status": "watchlist"})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Content not found", decode(t, w)["message"])
}

func TestUserContentUpsert_RejectsBadStatus(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	c := env.client(t)
	c.signup("alice")
	id := c.createContent("Dune", "movie")

	w := c.do(http.MethodPost, "/api/user-content", gin.H{"contentId": id, "status": "binging"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid data", decode(t, w)["message"])
}

func TestUserContentListByStatus_RejectsBadStatus(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	c := env.client(t)
	c.signup("alice")

	w := c.do(http.MethodGet, "/api/user-content/status/binging", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status", decode(t, w)["message"])
}

func TestUserContentUpdate_IsolatedPerUser(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	alice := env.client(t)
	alice.signup("alice")
	id := alice.createContent("Dune", "movie")

	w := alice.do(http.MethodPost, "/api/user-content", gin.H{"contentId": id, "status": "watchlist"})
	require.Equal(t, http.StatusCreated, w.Code)
	recordID := int64(decode(t, w)["id"].(float64))

	bob := env.client(t)
	bob.signup("bob")

	w = bob.do(http.MethodPatch, fmt.Sprintf("/api/user-content/%d", recordID), gin.H{"status": "watched"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User content relationship not found", decode(t, w)["message"])

	assert.Empty(t, decodeList(t, bob.do(http.MethodGet, "/api/user-content", nil)))
}
