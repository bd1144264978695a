package httpapi_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transync/internal/httpapi"
)

func TestServe(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)

	var hooks []string
	hookErr := errors.New("close failed")

	done := make(chan error, 1)
	go func() {
		done <- httpapi.Serve(ctx,
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }),
			httpapi.WithAddress("127.0.0.1:0"),
			httpapi.WithReady(func(a net.Addr) { addrCh <- a }),
			httpapi.WithShutdownTimeout(time.Second),
			httpapi.WithShutdownHook(
				func(context.Context) error { hooks = append(hooks, "first"); return nil },
				func(context.Context) error { hooks = append(hooks, "second"); return hookErr },
			),
		)
	}()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr.String() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, hookErr)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, []string{"first", "second"}, hooks)
}

func TestServe_ListenError(t *testing.T) {
	t.Parallel()

	err := httpapi.Serve(context.Background(), http.NotFoundHandler(), httpapi.WithAddress("256.0.0.1:bad"))
	assert.Error(t, err)
}
