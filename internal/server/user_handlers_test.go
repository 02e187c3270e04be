package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMyProfile(t *testing.T) {
	app, _ := newTestApp(t)
	alice := registerUser(t, app, "alice")

	t.Run("Update fields", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPatch, "/api/users/me", alice.Token, map[string]string{
			"display_name": "Alice B.",
			"bio":          "Lender of tools",
			"location":     "Springfield",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, "%s", raw)

		var user struct {
			DisplayName string `json:"display_name"`
			Bio         string `json:"bio"`
			Location    string `json:"location"`
		}
		require.NoError(t, json.Unmarshal(raw, &user))
		assert.Equal(t, "Alice B.", user.DisplayName)
		assert.Equal(t, "Lender of tools", user.Bio)
		assert.Equal(t, "Springfield", user.Location)
	})

	t.Run("Absent fields untouched", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPatch, "/api/users/me", alice.Token, map[string]string{
			"bio": "Updated bio only",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user struct {
			DisplayName string `json:"display_name"`
			Bio         string `json:"bio"`
		}
		require.NoError(t, json.Unmarshal(raw, &user))
		assert.Equal(t, "Alice B.", user.DisplayName)
		assert.Equal(t, "Updated bio only", user.Bio)
	})

	t.Run("Empty update rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/api/users/me", alice.Token, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Oversized bio rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/api/users/me", alice.Token, map[string]string{
			"bio": strings.Repeat("x", 1001),
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Requires auth", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/api/users/me", "", map[string]string{
			"bio": "anonymous",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetUserProfile(t *testing.T) {
	app, _ := newTestApp(t)
	alice := registerUser(t, app, "alice")

	t.Run("Public read", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d", alice.User.ID), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user struct {
			Username string `json:"username"`
		}
		require.NoError(t, json.Unmarshal(raw, &user))
		assert.Equal(t, "alice", user.Username)
		assert.NotContains(t, string(raw), "password")
	})

	t.Run("Unknown user", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/users/999", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Bad ID", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/users/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
