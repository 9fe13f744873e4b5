package backend

import "errors"

// Messages failing with one of these are never retried by the consumer.
var (
	ErrDecode     = errors.New("decode")
	ErrValidation = errors.New("validation")
)
