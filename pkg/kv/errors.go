package kv

import "errors"

var (
	ErrNotFound  = errors.New("kv: key not found")
	ErrClosed    = errors.New("kv: store closed")
	ErrMarshal   = errors.New("kv: failed to marshal value")
	ErrUnmarshal = errors.New("kv: failed to unmarshal value")
)
