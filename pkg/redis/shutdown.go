package redis

import (
	"context"
	"io"
)

// Shutdown returns a hook that closes the client during graceful shutdown.
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
