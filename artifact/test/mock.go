package artifacttest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/habiliai/signalrank/artifact"
	"github.com/habiliai/signalrank/badge"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Generate(ctx context.Context, req *artifact.GenerateRequest) (*artifact.GenerateResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*artifact.GenerateResponse)
	return resp, args.Error(1)
}

func (m *ServiceMock) Badge(ctx context.Context, slug string) (*badge.Badge, error) {
	args := m.Called(ctx, slug)
	b, _ := args.Get(0).(*badge.Badge)
	return b, args.Error(1)
}

var (
	_ artifact.Service = (*ServiceMock)(nil)
)
