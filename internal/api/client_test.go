package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Malithmadhushantha/asali-frontend/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 0, zerolog.Nop())
}

func TestRegisterAlwaysSendsCustomerRole(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(AuthPayload{Token: "t", User: models.Identity{Name: "A"}})
	})

	_, err := c.Register(context.Background(), "A", "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "customer", body["role"])
}

func TestBearerHeaderFollowsToken(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(userEnvelope{User: models.Identity{ID: "u1"}})
	})

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	c.SetToken("tok-123")
	_, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got)

	c.ClearToken()
	_, err = c.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestServerMessageSurfacesInError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid password"})
	})

	_, err := c.Login(context.Background(), "a@x.com", "bad")
	require.Error(t, err)
	assert.Equal(t, "Invalid password", Message(err, "Login failed"))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestMessageFallsBackOnNetworkError(t *testing.T) {
	c := New("http://127.0.0.1:1", 0, zerolog.Nop())

	_, err := c.Login(context.Background(), "a@x.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Login failed", Message(err, "Login failed"))
}

func TestListProductsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("featured"))
		assert.Equal(t, "4", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(ProductPage{
			Products: []models.Product{{ID: "p1", Name: "Saree", Price: 5000, Stock: 3}},
			Total:    1,
		})
	})

	page, err := c.ListProducts(context.Background(), ProductQuery{Featured: true, Limit: 4})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Saree", page.Products[0].Name)
}
