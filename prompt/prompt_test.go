package prompt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStructuredAPI(t *testing.T) {
	agent := entity.Agent{
		Slug:       "devin",
		Name:       "Devin",
		SRScore:    9.1,
		SRTier:     entity.TierS,
		IsMCP:      false,
		APIDocsURL: "https://docs.devin.ai",
	}

	res := prompt.Generate(agent)

	assert.Equal(t, prompt.KindStructuredAPI, res.Template)
	assert.True(t, res.HasStructuredAPI)
	assert.Equal(t, "https://docs.devin.ai", res.APIEndpoint)
	assert.Contains(t, res.SystemPrompt, "Devin")
	assert.Contains(t, res.SystemPrompt, "docs.devin.ai")
	assert.NotContains(t, res.SystemPrompt, prompt.KeyPlaceholder)
}

func TestGenerateStructuredAPIWithKey(t *testing.T) {
	agent := entity.Agent{
		Slug:        "acme",
		Name:        "Acme Vision",
		Description: "Image tagging. Requires an API key.",
		SRTier:      entity.TierB,
		ScoreBreakdown: entity.ScoreBreakdown{
			ReadinessScore: 1.5,
		},
	}

	res := prompt.Generate(agent)

	assert.Equal(t, prompt.KindStructuredAPI, res.Template)
	assert.True(t, res.RequiresAPIKey)
	assert.Contains(t, res.SystemPrompt, "Authorization: Bearer "+prompt.KeyPlaceholder)
}

func TestGenerateMCP(t *testing.T) {
	agent := entity.Agent{
		Slug:        "repo-tools",
		Name:        "Repo Tools",
		Description: "Needs an access token for private repositories.",
		GithubURL:   "https://github.com/acme/repo-tools",
		SRTier:      entity.TierA,
		SRScore:     8,
		IsMCP:       true,
	}

	res := prompt.Generate(agent)
	require.Equal(t, prompt.KindMCP, res.Template)
	assert.True(t, res.HasStructuredAPI)
	assert.Contains(t, res.SystemPrompt, "Repo Tools")
	assert.Contains(t, res.SystemPrompt, prompt.KeyPlaceholder)

	_, rest, ok := strings.Cut(res.SystemPrompt, "```json\n")
	require.True(t, ok)
	block, _, ok := strings.Cut(rest, "\n```")
	require.True(t, ok)

	var config struct {
		MCPServers map[string]struct {
			Command string            `json:"command"`
			Env     map[string]string `json:"env"`
		} `json:"mcpServers"`
	}
	require.NoError(t, json.Unmarshal([]byte(block), &config))
	require.Contains(t, config.MCPServers, "repo-tools")
	assert.Equal(t, prompt.KeyPlaceholder, config.MCPServers["repo-tools"].Env["API_KEY"])
}

func TestGenerateMCPWithoutKey(t *testing.T) {
	res := prompt.Generate(entity.Agent{Slug: "free", Name: "Free", SRTier: entity.TierC, IsMCP: true})

	assert.Equal(t, prompt.KindMCP, res.Template)
	assert.NotContains(t, res.SystemPrompt, "API_KEY")
	assert.NotContains(t, res.SystemPrompt, prompt.KeyPlaceholder)
}

func TestGenerateNaturalLanguage(t *testing.T) {
	testCases := []struct {
		name        string
		agent       entity.Agent
		requiresKey bool
	}{
		{
			name: "no key",
			agent: entity.Agent{
				Slug:        "chatty",
				Name:        "Chatty",
				HomepageURL: "https://chatty.app",
				SRTier:      entity.TierC,
				ScoreBreakdown: entity.ScoreBreakdown{
					ReadinessScore: 1.4,
				},
			},
		},
		{
			name: "marketing copy triggers key",
			agent: entity.Agent{
				Slug:            "writer",
				Name:            "Writer",
				MetaDescription: "Sign up for updates!",
				SRTier:          entity.TierB,
			},
			requiresKey: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := prompt.Generate(tc.agent)

			assert.Equal(t, prompt.KindNaturalLanguage, res.Template)
			assert.False(t, res.HasStructuredAPI)
			assert.Contains(t, res.SystemPrompt, tc.agent.Name)
			assert.True(t,
				strings.Contains(res.SystemPrompt, "How to Use") ||
					strings.Contains(res.SystemPrompt, "Usage") ||
					strings.Contains(res.SystemPrompt, "Instructions"),
			)
			assert.Equal(t, tc.requiresKey, res.RequiresAPIKey)
			if tc.requiresKey {
				assert.Contains(t, res.SystemPrompt, "Authentication Required")
				assert.Contains(t, res.SystemPrompt, prompt.KeyPlaceholder)
			} else {
				assert.NotContains(t, res.SystemPrompt, prompt.KeyPlaceholder)
			}
		})
	}
}

func TestPromptAlwaysContainsName(t *testing.T) {
	tracks := []entity.Track{entity.TrackOpenSource, entity.TrackSaaS, entity.TrackHybrid, ""}
	tiers := []entity.Tier{entity.TierS, entity.TierA, entity.TierB, entity.TierC}
	descriptions := []string{"", "Get started in minutes", "Plain text"}

	for _, track := range tracks {
		for _, tier := range tiers {
			for _, description := range descriptions {
				for _, isMCP := range []bool{true, false} {
					for _, docs := range []string{"", "https://docs.example.com"} {
						agent := entity.Agent{
							Slug:        "agent",
							Name:        "Agent \"Quoted\" & <Co>",
							Description: description,
							APIDocsURL:  docs,
							SRTrack:     track,
							SRTier:      tier,
							IsMCP:       isMCP,
						}
						res := prompt.Generate(agent)
						require.NotEmpty(t, res.SystemPrompt)
						require.Contains(t, res.SystemPrompt, agent.Name)
						if prompt.DetectRequiresAPIKey(agent) {
							require.Contains(t, res.SystemPrompt, prompt.KeyPlaceholder)
						}
					}
				}
			}
		}
	}
}

func TestDetectRequiresAPIKey(t *testing.T) {
	testCases := []struct {
		name     string
		agent    entity.Agent
		expected bool
	}{
		{name: "empty", agent: entity.Agent{}, expected: false},
		{name: "description", agent: entity.Agent{Description: "Pass your API_KEY header"}, expected: true},
		{name: "meta description", agent: entity.Agent{MetaDescription: "OAuth credentials needed"}, expected: true},
		{name: "docs url", agent: entity.Agent{APIDocsURL: "https://example.com/docs/authentication"}, expected: true},
		{name: "case insensitive", agent: entity.Agent{Description: "Bearer Token auth"}, expected: true},
		{name: "unrelated", agent: entity.Agent{Description: "Summarizes PDFs"}, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, prompt.DetectRequiresAPIKey(tc.agent))
		})
	}
}

func TestGeneratorWithCustomKeywords(t *testing.T) {
	g := prompt.NewGenerator(prompt.WithAPIKeyKeywords("License"))

	assert.True(t, g.DetectRequiresAPIKey(entity.Agent{Description: "needs a license"}))
	assert.False(t, g.DetectRequiresAPIKey(entity.Agent{Description: "needs an api key"}))
}

func TestAPIEndpoint(t *testing.T) {
	assert.Equal(t, "d", prompt.APIEndpoint(entity.Agent{APIDocsURL: "d", HomepageURL: "h", GithubURL: "g"}))
	assert.Equal(t, "h", prompt.APIEndpoint(entity.Agent{HomepageURL: "h", GithubURL: "g"}))
	assert.Equal(t, "g", prompt.APIEndpoint(entity.Agent{GithubURL: "g"}))
	assert.Equal(t, "", prompt.APIEndpoint(entity.Agent{}))
}

func TestSelectTemplate(t *testing.T) {
	assert.Equal(t, prompt.KindMCP, prompt.SelectTemplate(entity.Agent{IsMCP: true, APIDocsURL: "d"}))
	assert.Equal(t, prompt.KindStructuredAPI, prompt.SelectTemplate(entity.Agent{APIDocsURL: "d"}))
	assert.Equal(t, prompt.KindStructuredAPI, prompt.SelectTemplate(entity.Agent{
		ScoreBreakdown: entity.ScoreBreakdown{ReadinessScore: 2},
	}))
	assert.Equal(t, prompt.KindNaturalLanguage, prompt.SelectTemplate(entity.Agent{}))
}

func TestCapabilities(t *testing.T) {
	capabilities := prompt.Capabilities(entity.Agent{
		SRTier:      entity.TierA,
		SRScore:     8.2,
		SRTrack:     entity.TrackOpenSource,
		IsMCP:       true,
		InputTypes:  []entity.Modality{entity.ModalityUnknown},
		OutputTypes: []entity.Modality{entity.ModalityJSON, entity.ModalityUnknown},
	})

	require.Len(t, capabilities, 4)
	assert.Equal(t, "Produces: JSON", capabilities[0])
	assert.Contains(t, capabilities[1], "Model Context Protocol")
	assert.Contains(t, capabilities[2], "Open source")
	assert.True(t, strings.HasPrefix(capabilities[3], "Signal Rank A (8.2/10)."))
}
