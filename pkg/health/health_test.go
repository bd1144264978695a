package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transync/pkg/health"
)

func ok(context.Context) error   { return nil }
func fail(context.Context) error { return errors.New("down") }

func TestRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("no checks", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, health.StatusHealthy, health.Run(ctx, nil).Status)
	})

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(ctx, []health.Check{health.Required("db", ok), health.Optional("remote", ok)})
		assert.Equal(t, health.StatusHealthy, resp.Status)
		assert.Len(t, resp.Checks, 2)
	})

	t.Run("optional failure degrades", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(ctx, []health.Check{health.Required("db", ok), health.Optional("remote", fail)})
		assert.Equal(t, health.StatusDegraded, resp.Status)
		assert.Equal(t, health.StatusDegraded, resp.Checks["remote"].Status)
		assert.Equal(t, "down", resp.Checks["remote"].Error)
	})

	t.Run("required failure wins", func(t *testing.T) {
		t.Parallel()
		resp := health.Run(ctx, []health.Check{health.Required("db", fail), health.Optional("remote", fail)})
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		slow := func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}
		start := time.Now()
		resp := health.Run(ctx, []health.Check{health.Required("slow", slow)}, health.WithTimeout(20*time.Millisecond))
		assert.Equal(t, health.StatusUnhealthy, resp.Status)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestHandlers(t *testing.T) {
	t.Parallel()

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "healthy", rec.Body.String())
	})

	t.Run("degraded readiness is 200", func(t *testing.T) {
		t.Parallel()
		h := health.ReadinessHandler([]health.Check{health.Optional("remote", fail)})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp health.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, health.StatusDegraded, resp.Status)
	})

	t.Run("unhealthy readiness is 503", func(t *testing.T) {
		t.Parallel()
		h := health.ReadinessHandler([]health.Check{health.Required("db", fail)})
		req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})
}
