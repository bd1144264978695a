package transync

import "errors"

var (
	ErrUnsupportedLocale = errors.New("transync: unsupported locale")
	ErrInvalidMode       = errors.New("transync: invalid mode")
	ErrInvalidConfig     = errors.New("transync: invalid config")
)
