package jsonrpc

import (
	"github.com/gorilla/rpc/v2/json2"

	"github.com/habiliai/signalrank/errors"
)

// ErrCodeNotFound is returned when the requested agent does not exist.
const ErrCodeNotFound json2.ErrorCode = -32004

// MapError converts service errors to JSON-RPC errors. Errors that already
// carry a JSON-RPC code pass through unchanged; unclassified errors are
// reported as ErrInternal without their cause.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var rpcErr *json2.Error
	if errors.As(err, &rpcErr) {
		return err
	}

	rpcErr = &json2.Error{Message: err.Error()}
	switch {
	case errors.Is(err, errors.ErrInvalidParams):
		rpcErr.Code = json2.E_BAD_PARAMS
	case errors.Is(err, errors.ErrInvalidRequest):
		rpcErr.Code = json2.E_INVALID_REQ
	case errors.Is(err, errors.ErrNotFound):
		rpcErr.Code = ErrCodeNotFound
	default:
		rpcErr.Code = json2.E_INTERNAL
		rpcErr.Message = errors.ErrInternal.Error()
	}

	return rpcErr
}

// isClientError reports failures caused by the caller.
func isClientError(err error) bool {
	return errors.Is(err, errors.ErrInvalidParams) ||
		errors.Is(err, errors.ErrInvalidRequest) ||
		errors.Is(err, errors.ErrNotFound)
}
