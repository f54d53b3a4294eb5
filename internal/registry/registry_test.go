package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Published(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pkg-a/1.0.0":
			w.WriteHeader(http.StatusOK)
		case "/pkg-a/2.0.0":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/") // trailing slash must not double up
	defer client.Close()

	t.Run("existing version reports published", func(t *testing.T) {
		published, err := client.Published(context.Background(), "pkg-a", "1.0.0")
		require.NoError(t, err)
		assert.True(t, published)
	})

	t.Run("missing version is a normal false", func(t *testing.T) {
		published, err := client.Published(context.Background(), "pkg-a", "2.0.0")
		require.NoError(t, err)
		assert.False(t, published)
	})

	t.Run("unexpected status is unavailable", func(t *testing.T) {
		_, err := client.Published(context.Background(), "pkg-b", "1.0.0")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.ErrorContains(t, err, "500")
	})
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL)
	defer client.Close()

	_, err := client.Published(context.Background(), "pkg-a", "1.0.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ScopedNameEscaping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	defer client.Close()

	published, err := client.Published(context.Background(), "@scope/pkg", "1.0.0")
	require.NoError(t, err)
	assert.True(t, published)
	assert.Equal(t, "/@scope%2Fpkg/1.0.0", gotPath)
}
