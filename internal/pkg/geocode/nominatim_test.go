package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseGeocode(t *testing.T) {
	t.Run("returns display name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			w.Write([]byte(`{"display_name": "Jl. Jenderal Sudirman, Jakarta, Indonesia"}`))
		}))
		defer server.Close()

		c := NewNominatimClient(server.URL, "test-agent")
		got := c.ReverseGeocode(context.Background(), -6.2088, 106.8456)
		assert.Equal(t, "Jl. Jenderal Sudirman, Jakarta, Indonesia", got)
	})

	t.Run("degrades on server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := NewNominatimClient(server.URL, "test-agent")
		got := c.ReverseGeocode(context.Background(), -6.2088, 106.8456)
		assert.Equal(t, "Location: -6.208800, 106.845600", got)
	})

	t.Run("degrades on unreachable host", func(t *testing.T) {
		c := NewNominatimClient("http://127.0.0.1:1", "test-agent")
		got := c.ReverseGeocode(context.Background(), 1.5, 2.5)
		assert.Equal(t, "Location: 1.500000, 2.500000", got)
	})

	t.Run("degrades on empty display name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewNominatimClient(server.URL, "test-agent")
		got := c.ReverseGeocode(context.Background(), 0, 0)
		assert.Equal(t, "Location: 0.000000, 0.000000", got)
	})
}
