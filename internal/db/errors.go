package db

import "errors"

// ErrValidation marks store failures caused by bad input rather than storage
// problems. Handlers translate it to a 400 response.
var ErrValidation = errors.New("validation failed")
