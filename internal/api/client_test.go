package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaze/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return NewClient(srv.URL, "test-key", 5*time.Second, store), store
}

func TestClient_ListVenues_DecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/holidaze/venues", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Noroff-API-Key"))
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		assert.Equal(t, "created", r.URL.Query().Get("sort"))

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "v1", "name": "Cabin", "price": 120.0, "maxGuests": 4},
			},
			"meta": map[string]any{
				"currentPage": 1, "pageCount": 3, "totalCount": 30,
				"isFirstPage": true, "isLastPage": false,
			},
		})
	}))

	params := ListParams{Page: 1, Limit: 12}
	params.ApplyPreset(SortNewest)
	venues, meta, err := client.ListVenues(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Cabin", venues[0].Name)
	require.NotNil(t, meta)
	assert.Equal(t, 30, meta.TotalCount)
	assert.False(t, meta.IsLastPage)
}

func TestClient_ListVenues_SearchUsesSearchEndpoint(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/holidaze/venues/search", r.URL.Path)
		assert.Equal(t, "beach", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))

	_, _, err := client.ListVenues(context.Background(), ListParams{Query: "beach"})
	require.NoError(t, err)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{{"message": "Invalid email"}},
		})
	}))

	_, err := client.Register(context.Background(), RegisterRequest{Name: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid email", apiErr.Error())
	assert.False(t, apiErr.IsUnauthorized())
}

func TestClient_UnauthorizedIsDetectable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{{"message": "No authorization header was found"}},
		})
	}))

	_, err := client.ListBookings(context.Background(), false, false)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
}

func TestClient_Login_SavesSessionAndAttachesBearer(t *testing.T) {
	var sawBearer string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			assert.Equal(t, "true", r.URL.Query().Get("_holidaze"))
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"name": "renate", "email": "renate@stud.noroff.no",
					"accessToken": "tok-123", "venueManager": true,
				},
			})
		case "/holidaze/bookings":
			sawBearer = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
		}
	}))

	sess, err := client.Login(context.Background(), LoginRequest{Email: "renate@stud.noroff.no", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", sess.Token)
	assert.True(t, sess.Profile.VenueManager)

	stored := store.Get()
	require.NotNil(t, stored)
	assert.Equal(t, "renate", stored.Profile.Name)

	_, err = client.ListBookings(context.Background(), false, false)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", sawBearer)
}

func TestClient_DeleteBooking_NoContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/holidaze/bookings/b1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteBooking(context.Background(), "b1"))
}

func TestClient_Logout_ClearsSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	require.NoError(t, store.Save("tok", session.Profile{Name: "a"}))
	require.NoError(t, client.Logout())
	assert.Nil(t, store.Get())
}

func TestBookedRanges(t *testing.T) {
	from := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

	ranges := BookedRanges([]Booking{{DateFrom: from, DateTo: to}})

	require.Len(t, ranges, 1)
	assert.Equal(t, "2024-06-10", ranges[0].Start.String())
	assert.Equal(t, "2024-06-12", ranges[0].End.String())
}
