package jsonld_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/jsonld"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgent() entity.Agent {
	return entity.Agent{
		Slug:        "devin",
		Name:        "Devin",
		Description: "Autonomous software engineer",
		GithubURL:   "https://github.com/cognition-labs/devin",
		HomepageURL: "https://www.devin.ai",
		APIDocsURL:  "https://docs.devin.ai",
		OGImageURL:  "https://devin.ai/og.png",
		SRScore:     9.1,
		SRTier:      entity.TierS,
		SRTrack:     entity.TrackHybrid,
		IsMCP:       true,
		InputTypes:  []entity.Modality{entity.ModalityText, entity.ModalityCode, entity.ModalityUnknown},
		OutputTypes: []entity.Modality{entity.ModalityCode, entity.ModalityFile},
		CreatedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC),
	}
}

func TestGenerateFullAgent(t *testing.T) {
	res := jsonld.Generate(newAgent())
	doc := res.JSONLD

	assert.Equal(t, "https://schema.org", doc["@context"])
	assert.Equal(t, "SoftwareApplication", doc["@type"])
	assert.Equal(t, "Devin", doc["name"])
	assert.Equal(t, "Autonomous software engineer", doc["description"])
	assert.Equal(t, "https://www.devin.ai", doc["url"])
	assert.Equal(t, "cognition-labs", doc["provider"].(map[string]any)["name"])
	assert.Equal(t, "0", doc["offers"].(map[string]any)["price"])
	assert.Equal(t, "USD", doc["offers"].(map[string]any)["priceCurrency"])
	assert.Equal(t, "9.1", doc["aggregateRating"].(map[string]any)["ratingValue"])
	assert.Equal(t, "https://devin.ai/og.png", doc["image"])
	assert.Equal(t, "https://devin.ai/og.png", doc["screenshot"])
	assert.Equal(t, "https://github.com/cognition-labs/devin", doc["codeRepository"])
	assert.Equal(t, true, doc["isAccessibleForFree"])
	assert.Equal(t, "2025-06-15", doc["dateModified"])
	assert.Equal(t, "2025-03-01", doc["datePublished"])

	assert.Equal(t, []string{
		"Accepts: Text, Code",
		"Outputs: Code, File",
		"MCP (Model Context Protocol) Support",
		"API Documentation Available",
		"Signal Rank: S (9.1/10)",
	}, doc["featureList"])
	assert.Equal(t,
		"AI Agent, AI Tool, Open Source, SaaS, Hybrid, MCP, Model Context Protocol, Text, Code, File",
		doc["keywords"],
	)

	assert.True(t, jsonld.ValidateFields(doc))
	assert.Contains(t, res.DeploymentInstructions, "Devin")
	assert.Contains(t, res.DeploymentInstructions, "🏆")
	assert.Contains(t, res.DeploymentInstructions, "Signal Rank S")
	assert.Contains(t, res.DeploymentInstructions, "9.1/10")
}

func TestGenerateMinimalAgent(t *testing.T) {
	agent := entity.Agent{
		Slug:    "tiny",
		Name:    "Tiny",
		SRTier:  entity.TierC,
		SRTrack: entity.TrackSaaS,
	}
	doc := jsonld.Generate(agent, jsonld.WithBaseURL("http://localhost:9080")).JSONLD

	assert.Equal(t, "Tiny - AI Agent", doc["description"])
	assert.Equal(t, "http://localhost:9080/agents/tiny", doc["url"])
	assert.Equal(t, map[string]any{"@type": "Organization", "name": "Tiny"}, doc["provider"])
	assert.NotContains(t, doc, "aggregateRating")
	assert.NotContains(t, doc, "image")
	assert.NotContains(t, doc, "codeRepository")
	assert.NotContains(t, doc, "isAccessibleForFree")
	assert.NotContains(t, doc, "dateModified")
	assert.NotContains(t, doc, "datePublished")
	assert.Equal(t, []string{"Signal Rank: C (0.0/10)"}, doc["featureList"])
	assert.Equal(t, "AI Agent, AI Tool, SaaS, Cloud Service", doc["keywords"])
	assert.True(t, jsonld.ValidateFields(doc))
}

func TestProvider(t *testing.T) {
	testCases := []struct {
		name     string
		agent    entity.Agent
		expected string
	}{
		{
			name:     "github owner",
			agent:    entity.Agent{Name: "X", GithubURL: "https://github.com/acme/agent", HomepageURL: "https://acme.io"},
			expected: "acme",
		},
		{
			name:     "homepage host without www",
			agent:    entity.Agent{Name: "X", HomepageURL: "https://www.example.com/product"},
			expected: "example.com",
		},
		{
			name:     "unparseable homepage falls back to name",
			agent:    entity.Agent{Name: "X", HomepageURL: "not a url"},
			expected: "X",
		},
		{
			name:     "agent name",
			agent:    entity.Agent{Name: "Solo"},
			expected: "Solo",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, jsonld.Provider(tc.agent)["name"])
		})
	}
}

func TestURLPrecedence(t *testing.T) {
	agent := entity.Agent{Slug: "a", Name: "A", GithubURL: "https://github.com/o/a"}
	assert.Equal(t, "https://github.com/o/a", jsonld.Generate(agent).JSONLD["url"])
}

func TestKeywords(t *testing.T) {
	inputs := []entity.Modality{entity.ModalityText, entity.ModalityCode}
	outputs := []entity.Modality{entity.ModalityCode, entity.ModalityJSON}

	cases := []struct {
		name  string
		track entity.Track
		isMCP bool
		want  string
	}{
		{"open source", entity.TrackOpenSource, false, "AI Agent, AI Tool, Open Source, GitHub, Text, Code, JSON"},
		{"open source mcp", entity.TrackOpenSource, true, "AI Agent, AI Tool, Open Source, GitHub, MCP, Model Context Protocol, Text, Code, JSON"},
		{"saas", entity.TrackSaaS, false, "AI Agent, AI Tool, SaaS, Cloud Service, Text, Code, JSON"},
		{"saas mcp", entity.TrackSaaS, true, "AI Agent, AI Tool, SaaS, Cloud Service, MCP, Model Context Protocol, Text, Code, JSON"},
		{"hybrid", entity.TrackHybrid, false, "AI Agent, AI Tool, Open Source, SaaS, Hybrid, Text, Code, JSON"},
		{"hybrid mcp", entity.TrackHybrid, true, "AI Agent, AI Tool, Open Source, SaaS, Hybrid, MCP, Model Context Protocol, Text, Code, JSON"},
		{"no track", "", false, "AI Agent, AI Tool, Text, Code, JSON"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			agent := entity.Agent{
				Name:        "Keyword Agent",
				SRTrack:     c.track,
				IsMCP:       c.isMCP,
				InputTypes:  inputs,
				OutputTypes: outputs,
			}
			assert.Equal(t, c.want, jsonld.Keywords(agent))
		})
	}
}

func TestValidateFields(t *testing.T) {
	complete := jsonld.Document{
		"@context":    "https://schema.org",
		"@type":       "SoftwareApplication",
		"name":        "A",
		"description": "B",
		"url":         "https://a.dev",
		"provider":    map[string]any{"name": "A"},
	}
	require.True(t, jsonld.ValidateFields(complete))

	for _, field := range []string{"@context", "@type", "name", "description", "url", "provider"} {
		t.Run(field, func(t *testing.T) {
			missing := jsonld.Document{}
			nilValued := jsonld.Document{}
			for k, v := range complete {
				if k != field {
					missing[k] = v
				}
				nilValued[k] = v
			}
			nilValued[field] = nil

			assert.False(t, jsonld.ValidateFields(missing))
			assert.False(t, jsonld.ValidateFields(nilValued))
		})
	}
}

func TestJSONLDStringRoundTrip(t *testing.T) {
	agents := []entity.Agent{
		newAgent(),
		{Slug: "x", Name: `</script><script>alert("x")</script>`, Description: "a & b < c"},
		{},
	}

	for _, agent := range agents {
		res := jsonld.Generate(agent)
		require.True(t, jsonld.IsValidString(res.JSONLDString))
		require.True(t, jsonld.ValidateFields(res.JSONLD))

		body, ok := jsonld.ExtractScript(res.JSONLDString)
		require.True(t, ok)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &parsed))
		assert.Equal(t, agent.Name, parsed["name"])
	}
}

func TestIsValidString(t *testing.T) {
	assert.True(t, jsonld.IsValidString(`{"@context":"https://schema.org"}`))
	assert.False(t, jsonld.IsValidString(`<script type="application/ld+json">{broken</script>`))
	assert.False(t, jsonld.IsValidString(`null`))
	assert.False(t, jsonld.IsValidString(""))
}
