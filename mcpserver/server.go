package mcpserver

import (
	"context"
	"encoding/json"
	"math"

	"github.com/jcooky/go-din"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/habiliai/signalrank/artifact"
	"github.com/habiliai/signalrank/directory"
	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/internal/metrics"
	"github.com/habiliai/signalrank/internal/mylog"
	"github.com/habiliai/signalrank/signalrank"
)

const (
	Name = "signalrank"

	ToolGetAgent       = "get_agent"
	ToolGenerateJSONLD = "generate_jsonld"
	ToolGenerateBadge  = "generate_badge"
	ToolGeneratePrompt = "generate_prompt"
	ToolTierFromScore  = "tier_from_score"
)

type (
	Tools struct {
		logger    *mylog.Logger
		directory directory.Manager
		artifacts artifact.Service
		metrics   *metrics.Metrics
	}

	TierInfo struct {
		Score       float64     `json:"score"`
		Tier        entity.Tier `json:"tier"`
		Color       string      `json:"color"`
		Emoji       string      `json:"emoji"`
		Reliability string      `json:"reliability"`
	}

	slugArgs struct {
		Slug string `mapstructure:"slug"`
	}

	scoreArgs struct {
		Score *float64 `mapstructure:"score"`
	}
)

func NewTools(logger *mylog.Logger, directory directory.Manager, artifacts artifact.Service, metrics *metrics.Metrics) *Tools {
	return &Tools{
		logger:    logger,
		directory: directory,
		artifacts: artifacts,
		metrics:   metrics,
	}
}

// New builds an MCP server exposing the Signal Rank tools.
func New(c *din.Container, version string) *server.MCPServer {
	t := NewTools(
		din.MustGetT[*mylog.Logger](c),
		din.MustGetT[directory.Manager](c),
		din.MustGetT[artifact.Service](c),
		din.MustGetT[*metrics.Metrics](c),
	)

	s := server.NewMCPServer(Name, version, server.WithToolCapabilities(false))
	t.Register(s)
	return s
}

func slugTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("slug",
			mcp.Required(),
			mcp.Description("Directory slug of the agent, e.g. \"code-helper\""),
		),
	)
}

func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(
		slugTool(ToolGetAgent, "Get an agent listing with its Signal Rank score, tier and sub-scores"),
		t.instrument(ToolGetAgent, t.GetAgent),
	)
	s.AddTool(
		slugTool(ToolGenerateJSONLD, "Generate the Schema.org SoftwareApplication JSON-LD block for an agent"),
		t.instrument(ToolGenerateJSONLD, t.generate(artifact.TypeJSONLD)),
	)
	s.AddTool(
		slugTool(ToolGenerateBadge, "Generate the Signal Rank SVG badge and embed snippets for an agent"),
		t.instrument(ToolGenerateBadge, t.generate(artifact.TypeBadge)),
	)
	s.AddTool(
		slugTool(ToolGeneratePrompt, "Generate the system prompt that teaches an LLM how to call an agent"),
		t.instrument(ToolGeneratePrompt, t.generate(artifact.TypePrompt)),
	)
	s.AddTool(
		mcp.NewTool(ToolTierFromScore,
			mcp.WithDescription("Classify a Signal Rank score into its tier"),
			mcp.WithNumber("score",
				mcp.Required(),
				mcp.Description("Signal Rank score, normally between 0 and 10"),
			),
		),
		t.instrument(ToolTierFromScore, t.TierFromScore),
	)
}

func (t *Tools) instrument(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := handler(ctx, req)
		t.metrics.RecordMCPCall(name, err == nil && res != nil && !res.IsError)
		return res, err
	}
}

// toolError reports caller mistakes as tool results and everything else as a
// protocol error.
func (t *Tools) toolError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrInvalidParams) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t.logger.Error("mcp tool failed", mylog.Err(err))
	return nil, err
}

func decodeArgs(req mcp.CallToolRequest, out any) error {
	if err := mapstructure.Decode(req.Params.Arguments, out); err != nil {
		return errors.Wrapf(errors.ErrInvalidParams, "invalid arguments: %v", err)
	}
	return nil
}

func slugOf(req mcp.CallToolRequest) (string, error) {
	var args slugArgs
	if err := decodeArgs(req, &args); err != nil {
		return "", err
	}
	if args.Slug == "" {
		return "", errors.Wrapf(errors.ErrInvalidParams, "slug is required")
	}
	return args.Slug, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal result")
	}
	return mcp.NewToolResultText(string(raw)), nil
}

func (t *Tools) GetAgent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := slugOf(req)
	if err != nil {
		return t.toolError(err)
	}

	agent, err := t.directory.GetAgent(ctx, slug)
	if err != nil {
		return t.toolError(err)
	}
	return jsonResult(agent)
}

func (t *Tools) generate(typ artifact.Type) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug, err := slugOf(req)
		if err != nil {
			return t.toolError(err)
		}

		resp, err := t.artifacts.Generate(ctx, &artifact.GenerateRequest{AgentSlug: slug, Type: typ})
		if err != nil {
			return t.toolError(err)
		}

		// The prompt is meant to be pasted, so return it as plain text.
		if typ == artifact.TypePrompt {
			return mcp.NewToolResultText(resp.Prompt.SystemPrompt), nil
		}
		return jsonResult(resp.Output())
	}
}

func (t *Tools) TierFromScore(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args scoreArgs
	if err := decodeArgs(req, &args); err != nil {
		return t.toolError(err)
	}
	if args.Score == nil {
		return mcp.NewToolResultError("score is required"), nil
	}
	score := *args.Score
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return mcp.NewToolResultError("score must be a finite number"), nil
	}

	tier := signalrank.TierFromScore(score)
	return jsonResult(TierInfo{
		Score:       score,
		Tier:        tier,
		Color:       signalrank.TierColor(tier),
		Emoji:       signalrank.TierEmoji(tier),
		Reliability: signalrank.TierReliability(tier),
	})
}
