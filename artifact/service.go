package artifact

import (
	"context"
	"strings"

	"github.com/jcooky/go-din"

	"github.com/habiliai/signalrank/badge"
	"github.com/habiliai/signalrank/config"
	"github.com/habiliai/signalrank/directory"
	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/internal/metrics"
	"github.com/habiliai/signalrank/internal/mylog"
	"github.com/habiliai/signalrank/jsonld"
	"github.com/habiliai/signalrank/prompt"
	"github.com/habiliai/signalrank/signalrank"
)

type Type string

const (
	TypeJSONLD Type = "jsonld"
	TypeBadge  Type = "badge"
	TypePrompt Type = "prompt"
)

func (t Type) Valid() bool {
	switch t {
	case TypeJSONLD, TypeBadge, TypePrompt:
		return true
	default:
		return false
	}
}

type (
	GenerateRequest struct {
		AgentSlug string `json:"agentSlug"`
		Type      Type   `json:"type" jsonschema:"enum=jsonld,enum=badge,enum=prompt"`
	}

	// GenerateResponse carries exactly one generator output, selected by Type.
	GenerateResponse struct {
		Type   Type           `json:"type"`
		JSONLD *jsonld.Result `json:"jsonld,omitempty"`
		Badge  *badge.Badge   `json:"badge,omitempty"`
		Prompt *prompt.Result `json:"prompt,omitempty"`
	}

	Service interface {
		Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
		Badge(ctx context.Context, slug string) (*badge.Badge, error)
	}

	service struct {
		logger    *mylog.Logger
		directory directory.Manager
		prompts   *prompt.Generator
		metrics   *metrics.Metrics
		baseURL   string
	}
)

// Output returns the selected generator output alone.
func (r *GenerateResponse) Output() any {
	switch r.Type {
	case TypeJSONLD:
		return r.JSONLD
	case TypeBadge:
		return r.Badge
	case TypePrompt:
		return r.Prompt
	default:
		return nil
	}
}

func NewService(
	logger *mylog.Logger,
	directory directory.Manager,
	prompts *prompt.Generator,
	metrics *metrics.Metrics,
	baseURL string,
) Service {
	return &service{
		logger:    logger,
		directory: directory,
		prompts:   prompts,
		metrics:   metrics,
		baseURL:   baseURL,
	}
}

func (s *service) Generate(ctx context.Context, req *GenerateRequest) (resp *GenerateResponse, err error) {
	if req == nil || strings.TrimSpace(req.AgentSlug) == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "agentSlug is required")
	}
	if !req.Type.Valid() {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "unsupported type %q", req.Type)
	}
	defer func() {
		s.metrics.RecordGeneration(string(req.Type), err == nil)
	}()

	agent, err := s.directory.GetAgent(ctx, req.AgentSlug)
	if err != nil {
		return nil, err
	}

	resp = &GenerateResponse{Type: req.Type}
	switch req.Type {
	case TypeJSONLD:
		resp.JSONLD = jsonld.Generate(*agent, jsonld.WithBaseURL(s.baseURL))
	case TypeBadge:
		resp.Badge = s.badge(*agent)
	case TypePrompt:
		resp.Prompt = s.prompts.Generate(*agent)
	}

	s.logger.Debug("artifact generated", "slug", agent.Slug, "type", req.Type)
	return resp, nil
}

func (s *service) Badge(ctx context.Context, slug string) (b *badge.Badge, err error) {
	defer func() {
		s.metrics.RecordGeneration(string(TypeBadge), err == nil)
	}()

	agent, err := s.directory.GetAgent(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.badge(*agent), nil
}

// badge tolerates rows persisted without a tier by deriving it from the score.
func (s *service) badge(agent entity.Agent) *badge.Badge {
	tier := agent.SRTier
	if !tier.Valid() {
		tier = signalrank.TierFromScore(agent.SRScore)
	}
	return badge.Generate(agent.Slug, tier, agent.SRScore,
		badge.WithName(agent.Name),
		badge.WithBaseURL(s.baseURL),
	)
}

func init() {
	din.RegisterT(func(c *din.Container) (Service, error) {
		logger, err := din.GetT[*mylog.Logger](c)
		if err != nil {
			return nil, err
		}
		cfg, err := din.GetT[*config.ServerConfig](c)
		if err != nil {
			return nil, err
		}
		manager, err := din.GetT[directory.Manager](c)
		if err != nil {
			return nil, err
		}

		return NewService(
			logger,
			manager,
			prompt.NewGenerator(),
			din.MustGetT[*metrics.Metrics](c),
			cfg.BaseURL,
		), nil
	})
}
