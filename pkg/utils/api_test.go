package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPI_URL(t *testing.T) {
	api := NewAPI("https://pokeapi.co/api/v2/")

	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/25", api.URL("/pokemon/25", nil))

	params := url.Values{}
	params.Set("limit", "10")
	params.Set("offset", "0")
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon?limit=10&offset=0", api.URL("/pokemon", params))
}

func TestAPI_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "pokedex-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 25, "name": "pikachu"}`))
	}))
	defer server.Close()

	api := NewAPI(server.URL).WithUserAgent("pokedex-test")

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	status, err := api.Get(context.Background(), api.URL("/pokemon/25", nil), &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 25, out.ID)
	assert.Equal(t, "pikachu", out.Name)
}

func TestAPI_GetNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	api := NewAPI(server.URL)
	target := api.URL("/pokemon/missingno", nil)

	var out map[string]any
	status, err := api.Get(context.Background(), target, &out)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, target, fetchErr.URL)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestAPI_GetMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	api := NewAPI(server.URL)
	var out map[string]any
	_, err := api.Get(context.Background(), api.URL("/x", nil), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestAPI_GetBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("sprite-bytes"))
	}))
	defer server.Close()

	api := NewAPI(server.URL)

	body, err := api.GetBytes(context.Background(), server.URL+"/25.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("sprite-bytes"), body)

	_, err = api.GetBytes(context.Background(), server.URL+"/missing.png")
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}
