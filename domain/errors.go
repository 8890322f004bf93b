package domain

import "errors"

var (
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	ErrInvalidAction      = errors.New("invalid action")
	ErrInvalidTokenId     = errors.New("invalid token id")
	ErrNoActiveListings   = errors.New("No active listings")
	ErrUnsupportedBackend = errors.New("unsupported listings backend")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
)
