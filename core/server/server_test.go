package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-mirror/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Addr())
}

func TestNew_HealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("catalog_mirror_cycles_total 1"))
	})
	app := server.New(server.Config{ApiKey: "secret"}, zap.NewNop(), metrics)
	app.Get("/private", func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"Health is public", "/health", http.StatusOK, `{"status":"ok"}`},
		{"Metrics is public", "/metrics", http.StatusOK, "catalog_mirror_cycles_total 1"},
		{"Other routes need a key", "/private", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))
			if tt.body != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.body, string(body))
			}
		})
	}
}
