package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/config"
	"github.com/innovation-atlas/internal/domain"
	apperrors "github.com/innovation-atlas/internal/pkg/errors"
)

func newTestConfig(url string) *config.MapboxConfig {
	return &config.MapboxConfig{
		AccessToken:    "test_token",
		BaseURL:        url,
		Country:        "kz",
		RequestTimeout: 5,
	}
}

func TestClient_Geocode(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/geocoding/v5/mapbox.places/Астана, Мәңгілік Ел 55.json", r.URL.Path)
			assert.Equal(t, "test_token", r.URL.Query().Get("access_token"))
			assert.Equal(t, "kz", r.URL.Query().Get("country"))
			assert.Equal(t, "kk", r.URL.Query().Get("language"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"features":[{"place_name":"Астана","center":[71.43,51.12],"relevance":0.9}]}`))
		}))
		defer server.Close()

		client := NewMapboxClient(newTestConfig(server.URL), logger)

		result, err := client.Geocode(context.Background(), "Астана, Мәңгілік Ел 55", domain.LanguageKZ)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.InDelta(t, 51.12, result.Lat, 1e-9)
		assert.InDelta(t, 71.43, result.Lon, 1e-9)
		assert.Equal(t, "Астана", result.PlaceName)
	})

	t.Run("nothing found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"features":[]}`))
		}))
		defer server.Close()

		client := NewMapboxClient(newTestConfig(server.URL), logger)

		result, err := client.Geocode(context.Background(), "nowhere", domain.LanguageRU)

		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("empty query skips request", func(t *testing.T) {
		client := NewMapboxClient(newTestConfig("http://127.0.0.1:0"), logger)

		result, err := client.Geocode(context.Background(), "   ", domain.LanguageRU)

		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("unauthorized is not retried", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Not Authorized - Invalid Token"}`))
		}))
		defer server.Close()

		client := NewMapboxClient(newTestConfig(server.URL), logger)

		_, err := client.Geocode(context.Background(), "Алматы", domain.LanguageRU)

		assert.ErrorIs(t, err, apperrors.ErrGeocodingFailed)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("server error is retried", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"features":[{"place_name":"Алматы","center":[76.9,43.2],"relevance":1}]}`))
		}))
		defer server.Close()

		client := NewMapboxClient(newTestConfig(server.URL), logger)

		result, err := client.Geocode(context.Background(), "Алматы", domain.LanguageRU)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})
}
