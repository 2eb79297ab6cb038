package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusqueiroz92/trekmind/app/observability/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitAppMetrics()
	m.Run()
}

func TestGetCoordinatesFromAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("ParsesStringCoordinates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "Praça do Comércio, Lisboa", q.Get("q"))
			assert.Equal(t, "json", q.Get("format"))
			assert.Equal(t, "1", q.Get("limit"))
			assert.Equal(t, "TrekMind/1.0", r.Header.Get("User-Agent"))

			fmt.Fprint(w, `[{"lat":"38.7077","lon":"-9.1365","display_name":"Praça do Comércio, Lisboa, Portugal"}]`)
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "", slog.Default())
		result, err := client.GetCoordinatesFromAddress(ctx, "Praça do Comércio, Lisboa")
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 38.7077, result.Latitude)
		assert.Equal(t, -9.1365, result.Longitude)
		assert.Equal(t, "Praça do Comércio, Lisboa, Portugal", result.FormattedAddress)
	})

	t.Run("NoMatchIsNilNotError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "", slog.Default())
		result, err := client.GetCoordinatesFromAddress(ctx, "nowhere at all")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("NonOKStatusIsError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "", slog.Default())
		_, err := client.GetCoordinatesFromAddress(ctx, "Lisboa")
		assert.Error(t, err)
	})

	t.Run("CustomUserAgentIsSent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "MyApp/2.0", r.Header.Get("User-Agent"))
			fmt.Fprint(w, `[]`)
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "MyApp/2.0", slog.Default())
		_, err := client.GetCoordinatesFromAddress(ctx, "Porto")
		require.NoError(t, err)
	})

	t.Run("MalformedCoordinateIsError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"lat":"not-a-number","lon":"-9.1","display_name":"x"}]`)
		}))
		defer server.Close()

		client := NewNominatimClient(server.URL, "", slog.Default())
		_, err := client.GetCoordinatesFromAddress(ctx, "Lisboa")
		assert.Error(t, err)
	})
}
