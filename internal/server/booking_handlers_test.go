package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingResponse struct {
	ID         uint   `json:"id"`
	ItemID     *uint  `json:"item_id"`
	BorrowerID uint   `json:"borrower_id"`
	OwnerID    uint   `json:"owner_id"`
	Status     string `json:"status"`
}

func TestBookings_CreateFlow(t *testing.T) {
	app, _ := newTestApp(t)
	alice := registerUser(t, app, "alice")
	bob := registerUser(t, app, "bob")
	itemID := createItem(t, app, alice.Token, "Cordless Drill")

	t.Run("Borrower books", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPost, "/api/bookings", bob.Token, map[string]interface{}{
			"item_id":     itemID,
			"pickup_date": "2026-09-01",
			"return_date": "2026-09-05",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, "%s", raw)

		var booking bookingResponse
		require.NoError(t, json.Unmarshal(raw, &booking))
		assert.Equal(t, "pending", booking.Status)
		assert.Equal(t, bob.User.ID, booking.BorrowerID)
		assert.Equal(t, alice.User.ID, booking.OwnerID)
	})

	t.Run("Return before pickup", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/bookings", bob.Token, map[string]interface{}{
			"item_id":     itemID,
			"pickup_date": "2026-09-05",
			"return_date": "2026-09-01",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Own item", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/bookings", alice.Token, map[string]interface{}{
			"item_id":     itemID,
			"pickup_date": "2026-09-01",
			"return_date": "2026-09-05",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing item", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/bookings", bob.Token, map[string]interface{}{
			"item_id":     uint(999),
			"pickup_date": "2026-09-01",
			"return_date": "2026-09-05",
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Bad date format", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/bookings", bob.Token, map[string]interface{}{
			"item_id":     itemID,
			"pickup_date": "next tuesday",
			"return_date": "2026-09-05",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Listed for both parties", func(t *testing.T) {
		for _, session := range []authResponse{alice, bob} {
			resp, raw := doJSON(t, app, http.MethodGet, "/api/bookings", session.Token, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var bookings []bookingResponse
			require.NoError(t, json.Unmarshal(raw, &bookings))
			assert.Len(t, bookings, 1)
		}
	})
}

func TestBookings_Lifecycle(t *testing.T) {
	app, _ := newTestApp(t)
	alice := registerUser(t, app, "alice")
	bob := registerUser(t, app, "bob")
	itemID := createItem(t, app, alice.Token, "Cordless Drill")

	resp, raw := doJSON(t, app, http.MethodPost, "/api/bookings", bob.Token, map[string]interface{}{
		"item_id":     itemID,
		"pickup_date": "2026-09-01T10:00:00Z",
		"return_date": "2026-09-05T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var booking bookingResponse
	require.NoError(t, json.Unmarshal(raw, &booking))

	t.Run("Borrower cannot accept", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/api/bookings/1/status", bob.Token, map[string]string{
			"status": "accepted",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Owner accepts, item goes borrowed", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPatch, "/api/bookings/1/status", alice.Token, map[string]string{
			"status": "accepted",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated bookingResponse
		require.NoError(t, json.Unmarshal(raw, &updated))
		assert.Equal(t, "accepted", updated.Status)

		resp, raw = doJSON(t, app, http.MethodGet, "/api/items/1", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var item struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(raw, &item))
		assert.Equal(t, "borrowed", item.Status)
	})

	t.Run("Cannot skip back to pending", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/api/bookings/1/status", alice.Token, map[string]string{
			"status": "pending",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Owner completes, item available again", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/api/bookings/1/status", alice.Token, map[string]string{
			"status": "completed",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, raw := doJSON(t, app, http.MethodGet, "/api/items/1", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var item struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(raw, &item))
		assert.Equal(t, "available", item.Status)
	})

	t.Run("Completed is terminal", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/api/bookings/1/status", alice.Token, map[string]string{
			"status": "accepted",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown status", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPatch, "/api/bookings/1/status", alice.Token, map[string]string{
			"status": "cancelled",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
