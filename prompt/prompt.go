package prompt

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/internal/tmpl"
	"github.com/habiliai/signalrank/signalrank"
	"github.com/samber/lo"
)

// KeyPlaceholder marks where the consumer has to insert their own credentials.
const KeyPlaceholder = "<PASTE_YOUR_KEY_HERE>"

// StructuredReadinessThreshold is the readiness sub-score from which an agent
// is assumed to expose a structured API.
const StructuredReadinessThreshold = 1.5

// Kind selects one of the prompt templates.
type Kind string

const (
	KindMCP             Kind = "mcp"
	KindStructuredAPI   Kind = "structured_api"
	KindNaturalLanguage Kind = "natural_language"
)

var (
	// DefaultAPIKeyKeywords trigger the api-key placeholder when found in an
	// agent's description, meta description or docs URL.
	DefaultAPIKeyKeywords = []string{
		"api key",
		"api_key",
		"apikey",
		"api-key",
		"authentication",
		"auth token",
		"access token",
		"bearer token",
		"secret key",
		"credentials",
		"sign up",
		"register",
		"get started",
	}

	//go:embed data/mcp.md.tmpl
	mcpInst string
	//go:embed data/structured.md.tmpl
	structuredInst string
	//go:embed data/natural.md.tmpl
	naturalInst string

	templates = map[Kind]*template.Template{
		KindMCP:             tmpl.Must(string(KindMCP), mcpInst),
		KindStructuredAPI:   tmpl.Must(string(KindStructuredAPI), structuredInst),
		KindNaturalLanguage: tmpl.Must(string(KindNaturalLanguage), naturalInst),
	}

	trackDescriptions = map[entity.Track]string{
		entity.TrackOpenSource: "Open source: the code is public on GitHub and can be self-hosted.",
		entity.TrackSaaS:       "Hosted service: runs on the provider's cloud platform.",
		entity.TrackHybrid:     "Hybrid: open-source core with an optional hosted service.",
	}

	defaultGenerator = NewGenerator()
)

type (
	Result struct {
		SystemPrompt     string `json:"systemPrompt"`
		HasStructuredAPI bool   `json:"hasStructuredAPI"`
		APIEndpoint      string `json:"apiEndpoint,omitempty"`
		RequiresAPIKey   bool   `json:"requiresApiKey"`
		Template         Kind   `json:"template"`
	}

	Generator struct {
		apiKeyKeywords []string
	}
	Option func(*Generator)

	promptValues struct {
		Agent          entity.Agent
		Capabilities   []string
		RequiresAPIKey bool
		APIEndpoint    string
		KeyPlaceholder string
		MCPConfig      string
	}

	mcpServerConfig struct {
		Command string            `json:"command"`
		Args    []string          `json:"args"`
		Env     map[string]string `json:"env,omitempty"`
	}
)

func WithAPIKeyKeywords(keywords ...string) Option {
	return func(g *Generator) {
		g.apiKeyKeywords = lo.Map(keywords, func(k string, _ int) string {
			return strings.ToLower(k)
		})
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{apiKeyKeywords: DefaultAPIKeyKeywords}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the interface prompt with the default keyword list.
func Generate(agent entity.Agent) *Result {
	return defaultGenerator.Generate(agent)
}

func DetectRequiresAPIKey(agent entity.Agent) bool {
	return defaultGenerator.DetectRequiresAPIKey(agent)
}

// DetectRequiresAPIKey is a plain substring match, so marketing copy such as
// "sign up for updates" also triggers it.
func (g *Generator) DetectRequiresAPIKey(agent entity.Agent) bool {
	haystack := strings.ToLower(agent.Description + " " + agent.MetaDescription + " " + agent.APIDocsURL)
	return lo.SomeBy(g.apiKeyKeywords, func(keyword string) bool {
		return strings.Contains(haystack, keyword)
	})
}

func DetectStructuredAPI(agent entity.Agent) bool {
	return agent.APIDocsURL != "" ||
		agent.ScoreBreakdown.ReadinessScore >= StructuredReadinessThreshold ||
		agent.IsMCP
}

// APIEndpoint picks the first known URL among docs, homepage and repository.
// Reachability is not checked.
func APIEndpoint(agent entity.Agent) string {
	for _, u := range []string{agent.APIDocsURL, agent.HomepageURL, agent.GithubURL} {
		if u != "" {
			return u
		}
	}
	return ""
}

func SelectTemplate(agent entity.Agent) Kind {
	switch {
	case agent.IsMCP:
		return KindMCP
	case DetectStructuredAPI(agent):
		return KindStructuredAPI
	default:
		return KindNaturalLanguage
	}
}

// Capabilities lists, in order: inputs, outputs, MCP support, provenance and
// reliability.
func Capabilities(agent entity.Agent) []string {
	var capabilities []string
	if inputs := knownModalities(agent.InputTypes); len(inputs) > 0 {
		capabilities = append(capabilities, "Accepts: "+strings.Join(inputs, ", "))
	}
	if outputs := knownModalities(agent.OutputTypes); len(outputs) > 0 {
		capabilities = append(capabilities, "Produces: "+strings.Join(outputs, ", "))
	}
	if agent.IsMCP {
		capabilities = append(capabilities, "Supports the Model Context Protocol (MCP).")
	}
	if s, ok := trackDescriptions[agent.SRTrack]; ok {
		capabilities = append(capabilities, s)
	}
	capabilities = append(capabilities, fmt.Sprintf(
		"Signal Rank %s (%s/10). %s",
		agent.SRTier,
		signalrank.FormatScore(agent.SRScore),
		signalrank.TierReliability(agent.SRTier),
	))

	return capabilities
}

func knownModalities(modalities []entity.Modality) []string {
	return lo.FilterMap(modalities, func(m entity.Modality, _ int) (string, bool) {
		return string(m), m != entity.ModalityUnknown
	})
}

func (g *Generator) Generate(agent entity.Agent) *Result {
	requiresAPIKey := g.DetectRequiresAPIKey(agent)
	kind := SelectTemplate(agent)

	values := promptValues{
		Agent:          agent,
		Capabilities:   Capabilities(agent),
		RequiresAPIKey: requiresAPIKey,
		APIEndpoint:    APIEndpoint(agent),
		KeyPlaceholder: KeyPlaceholder,
	}
	if kind == KindMCP {
		values.MCPConfig = mcpConfig(agent.Slug, requiresAPIKey)
	}

	systemPrompt, err := tmpl.Execute(templates[kind], values)
	if err != nil {
		panic(fmt.Sprintf("prompt: failed to render %s template: %v", kind, err))
	}

	return &Result{
		SystemPrompt:     strings.TrimSpace(systemPrompt),
		HasStructuredAPI: DetectStructuredAPI(agent),
		APIEndpoint:      values.APIEndpoint,
		RequiresAPIKey:   requiresAPIKey,
		Template:         kind,
	}
}

func mcpConfig(slug string, requiresAPIKey bool) string {
	server := mcpServerConfig{
		Command: "npx",
		Args:    []string{"-y", slug},
	}
	if requiresAPIKey {
		server.Env = map[string]string{"API_KEY": KeyPlaceholder}
	}

	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"mcpServers": map[string]mcpServerConfig{slug: server},
	}); err != nil {
		panic(fmt.Sprintf("prompt: failed to encode mcp config: %v", err))
	}
	return strings.TrimSpace(buf.String())
}
