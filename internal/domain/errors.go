package domain

import "errors"

// ErrInvalidParameter is returned before any remote call when a required
// argument is missing.
var ErrInvalidParameter = errors.New("invalid parameter")
