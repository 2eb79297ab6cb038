package types

import "errors"

var ErrNotFound = errors.New("requested item not found")

// ErrValidation wraps request validation failures so handlers can answer 400
// without inspecting message text.
var ErrValidation = errors.New("validation failed")
