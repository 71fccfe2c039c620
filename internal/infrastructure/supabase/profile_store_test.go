package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scansafe/backend/internal/domain"
)

func TestGetAllergyText_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/profiles", r.URL.Path)
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("id"))
		assert.Equal(t, "allergies", r.URL.Query().Get("select"))
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Write([]byte(`[{"allergies": "Peanuts, Milk"}]`))
	}))
	defer server.Close()

	store := NewProfileStore(server.URL, "test-key")
	text, err := store.GetAllergyText(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "Peanuts, Milk", text)
}

func TestGetAllergyText_MissingRow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	store := NewProfileStore(server.URL, "test-key")
	_, err := store.GetAllergyText(context.Background(), "nobody")

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGetAllergyText_NullAllergies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"allergies": null}]`))
	}))
	defer server.Close()

	store := NewProfileStore(server.URL, "test-key")
	text, err := store.GetAllergyText(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestGetAllergyText_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Invalid API key"}`))
	}))
	defer server.Close()

	store := NewProfileStore(server.URL, "bad-key")
	_, err := store.GetAllergyText(context.Background(), "user-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
