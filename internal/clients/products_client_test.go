package clients_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitalmarket/supplements-service/internal/clients"
	"github.com/vitalmarket/supplements-service/internal/logs"
)

func TestEvictCache(t *testing.T) {
	logger := logs.NewSlogLogger()

	t.Run("Success", func(t *testing.T) {
		var called bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/products/cache", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := clients.NewProductsClient(server.URL, logger)
		err := client.EvictCache(context.Background())

		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("No Content Is Still Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := clients.NewProductsClient(server.URL, logger)
		err := client.EvictCache(context.Background())

		assert.NoError(t, err)
	})

	t.Run("Unexpected Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := clients.NewProductsClient(server.URL, logger)
		err := client.EvictCache(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code")
	})

	t.Run("Unreachable Service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := clients.NewProductsClient(server.URL, logger)
		err := client.EvictCache(context.Background())

		assert.Error(t, err)
	})
}
