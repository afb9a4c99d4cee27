package artifact

import (
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/jcooky/go-din"

	"github.com/habiliai/signalrank/errors"
)

const servicePrefix = "Artifacts"

type JsonRpcService struct {
	service Service
}

func (s *JsonRpcService) Generate(r *http.Request, args *GenerateRequest, reply *GenerateResponse) error {
	resp, err := s.service.Generate(r.Context(), args)
	if err != nil {
		return err
	}

	*reply = *resp
	return nil
}

func RegisterJsonRpcService(c *din.Container, server *rpc.Server) error {
	svc := &JsonRpcService{
		service: din.MustGetT[Service](c),
	}
	return errors.Wrapf(server.RegisterService(svc, servicePrefix), "failed to register jsonrpc service")
}
