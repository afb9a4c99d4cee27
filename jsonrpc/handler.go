package jsonrpc

import (
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/jcooky/go-din"
)

type ServerOption = func(c *din.Container, server *rpc.Server)

// NewHandler serves JSON-RPC 2.0 over HTTP POST for the services added by
// opts. Panic recovery is left to the enclosing HTTP stack.
func NewHandler(c *din.Container, opts ...ServerOption) http.Handler {
	return newRPCServer(c, opts...)
}
