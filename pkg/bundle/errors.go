package bundle

import "errors"

var (
	ErrEmptyLocale = errors.New("bundle: locale cannot be empty")
	ErrInvalidFile = errors.New("bundle: invalid translation file")
)
