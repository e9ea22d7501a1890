package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	// ErrEmptyResponse is returned for a response with neither a payload nor
	// field errors.
	ErrEmptyResponse = errors.New("empty response")
)
