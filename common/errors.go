package common

import "errors"

var (
	ErrorInvalidValue  = errors.New("invalid value")
	ErrorInvalidInput  = errors.New("invalid input")
	ErrorShapeMismatch = errors.New("mean and sd shape mismatch")
	ErrorInternal      = errors.New("internal error")
)
