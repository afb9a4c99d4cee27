package errors

import (
	stderrors "errors"
)

// Sentinels callers match with Is. Transport layers map them to status codes.
var (
	// ErrNotFound means the requested agent does not exist.
	ErrNotFound = stderrors.New("signalrank: not found")
	// ErrInvalidParams rejects a well-formed request carrying bad values.
	ErrInvalidParams = stderrors.New("signalrank: invalid params")
	// ErrInvalidRequest rejects a request that could not be decoded.
	ErrInvalidRequest = stderrors.New("signalrank: invalid request")
	ErrInvalidConfig  = stderrors.New("signalrank: invalid config")
	ErrInternal       = stderrors.New("signalrank: internal error")
)
