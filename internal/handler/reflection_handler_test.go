package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectionCreate_UnknownContentPersistsNothing(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	c := env.client(t)
	c.signup("alice")

	w := c.do(http.MethodPost, "/api/reflections", gin.H{
		"contentId": 999,
		"text":      "dangling note",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Content not found", decode(t, w)["message"])

	listing := c.do(http.MethodGet, "/api/reflections", nil)
	require.Equal(t, http.StatusOK, listing.Code)
	assert.Empty(t, decodeList(t, listing), "the rejected reflection must not exist")
}

func TestReflectionCreateAndList(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	c := env.client(t)
	c.signup("alice")
	dune := c.createContent("Dune", "movie")
	arrival := c.createContent("Arrival", "movie")

	w := c.do(http.MethodPost, "/api/reflections", gin.H{
		"contentId": dune,
		"text":      "The sandworm reveal is incredible",
		"timestamp": "01:23:45",
		"tags":      []string{"visuals"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode(t, w)
	assert.Equal(t, "01:23:45", first["timestamp"])

	w = c.do(http.MethodPost, "/api/reflections", gin.H{
		"contentId": arrival,
		"text":      "The ending recontextualizes everything",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	items := decodeList(t, c.do(http.MethodGet, "/api/reflections", nil))
	require.Len(t, items, 2)
	assert.Equal(t, "The ending recontextualizes everything", items[0]["text"], "newest first")
	content := items[0]["content"].(map[string]any)
	assert.Equal(t, "Arrival", content["title"])

	byContent := decodeList(t, c.do(http.MethodGet, fmt.Sprintf("/api/reflections/content/%d", dune), nil))
	require.Len(t, byContent, 1)
	assert.Equal(t, "The sandworm reveal is incredible", byContent[0]["text"])
}

func TestReflectionListByContent_UnknownContent(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	c := env.client(t)
	c.signup("alice")

	w := c.do(http.MethodGet, "/api/reflections/content/999", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Content not found", decode(t, w)["message"])
}

func TestReflections_ScopedToCaller(t *testing.T) {
	env := newTestEnv(t, &fixedGenerator{})
	alice := env.client(t)
	alice.signup("alice")
	id := alice.createContent("Dune", "movie")

	w := alice.do(http.MethodPost, "/api/reflections", gin.H{"contentId": id, "text": "mine"})
	require.Equal(t, http.StatusCreated, w.Code)

	bob := env.client(t)
	bob.signup("bob")
	assert.Empty(t, decodeList(t, bob.do(http.MethodGet, "/api/reflections", nil)))
}
