package artifact

import (
	"context"
	"net/http"

	"github.com/ybbus/jsonrpc/v3"
)

type (
	JsonRpcClient interface {
		Generate(ctx context.Context, request *GenerateRequest) (*GenerateResponse, error)
	}

	jsonRpcClient struct {
		client jsonrpc.RPCClient
	}
)

func NewJsonRpcClient(url string) JsonRpcClient {
	return &jsonRpcClient{
		client: jsonrpc.NewClient(url),
	}
}

func NewJsonRpcClientWithHttpClient(url string, httpClient *http.Client) JsonRpcClient {
	return &jsonRpcClient{
		client: jsonrpc.NewClientWithOpts(url, &jsonrpc.RPCClientOpts{
			HTTPClient: httpClient,
		}),
	}
}

func (c *jsonRpcClient) Generate(ctx context.Context, request *GenerateRequest) (*GenerateResponse, error) {
	var response GenerateResponse
	if err := c.client.CallFor(ctx, &response, servicePrefix+".Generate", request); err != nil {
		return nil, err
	}
	return &response, nil
}
