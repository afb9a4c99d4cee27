package jsonrpc

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/jcooky/go-din"

	"github.com/habiliai/signalrank/artifact"
	"github.com/habiliai/signalrank/internal/mylog"
)

type startTimeCtxKey struct{}

func WithArtifacts() ServerOption {
	return func(c *din.Container, s *rpc.Server) {
		if err := artifact.RegisterJsonRpcService(c, s); err != nil {
			panic(err)
		}
	}
}

func newRPCServer(c *din.Container, opts ...ServerOption) *rpc.Server {
	logger := din.MustGetT[*mylog.Logger](c).WithGroup("jsonrpc")

	server := rpc.NewServer()
	for _, opt := range opts {
		opt(c, server)
	}
	// The intercepted request is the one handed to the service and to the
	// after func.
	server.RegisterInterceptFunc(func(i *rpc.RequestInfo) *http.Request {
		return i.Request.WithContext(context.WithValue(i.Request.Context(), startTimeCtxKey{}, time.Now()))
	})
	server.RegisterAfterFunc(func(i *rpc.RequestInfo) {
		attrs := []any{
			slog.String("method", i.Method),
			slog.Int("statusCode", i.StatusCode),
		}
		if startTime, ok := i.Request.Context().Value(startTimeCtxKey{}).(time.Time); ok {
			attrs = append(attrs, slog.Duration("duration", time.Since(startTime)))
		}

		switch {
		case i.Error == nil:
			logger.Info("[JSON-RPC] call", attrs...)
		case isClientError(i.Error):
			logger.Info("[JSON-RPC] call rejected", append(attrs, mylog.Err(i.Error))...)
		default:
			logger.Error("[JSON-RPC] call failed", append(attrs, mylog.Err(i.Error))...)
		}
	})
	server.RegisterCodec(json2.NewCustomCodecWithErrorMapper(rpc.DefaultEncoderSelector, MapError), "application/json")

	return server
}
