package jsonld

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/internal/tmpl"
	"github.com/habiliai/signalrank/signalrank"
	"github.com/samber/lo"
)

const (
	dateLayout = "2006-01-02"

	scriptOpen  = `<script type="application/ld+json">`
	scriptClose = `</script>`
)

var (
	//go:embed data/deployment.md.tmpl
	deploymentInst     string
	deploymentInstTmpl = tmpl.Must("deployment", deploymentInst)

	githubOwnerRe = regexp.MustCompile(`github\.com/([^/?#\s]+)`)

	requiredFields = []string{"@context", "@type", "name", "description", "url", "provider"}
)

type (
	// Document is a Schema.org JSON-LD object.
	Document map[string]any

	Result struct {
		JSONLD                 Document `json:"jsonLd"`
		JSONLDString           string   `json:"jsonLdString"`
		DeploymentInstructions string   `json:"deploymentInstructions"`
	}

	options struct {
		baseURL string
	}
	Option func(*options)
)

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// Generate builds the SoftwareApplication document for an agent together with
// its script tag and deployment guide. Missing optional fields fall back to
// synthesized values; it never fails.
func Generate(agent entity.Agent, opts ...Option) *Result {
	o := options{baseURL: signalrank.DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	doc := BuildDocument(agent, o.baseURL)
	return &Result{
		JSONLD:                 doc,
		JSONLDString:           ScriptTag(doc),
		DeploymentInstructions: DeploymentInstructions(agent),
	}
}

func BuildDocument(agent entity.Agent, baseURL string) Document {
	score := signalrank.FormatScore(agent.SRScore)

	doc := Document{
		"@context":            "https://schema.org",
		"@type":               "SoftwareApplication",
		"name":                agent.Name,
		"description":         description(agent),
		"url":                 canonicalURL(agent, baseURL),
		"applicationCategory": "DeveloperApplication",
		"operatingSystem":     "Any",
		"provider":            Provider(agent),
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         "0",
			"priceCurrency": "USD",
		},
		"featureList": FeatureList(agent),
		"keywords":    Keywords(agent),
	}

	if agent.SRScore > 0 {
		doc["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": score,
			"bestRating":  "10",
			"worstRating": "0",
			"ratingCount": 1,
		}
	}

	if agent.OGImageURL != "" {
		doc["image"] = agent.OGImageURL
		doc["screenshot"] = agent.OGImageURL
	}

	if agent.GithubURL != "" {
		doc["codeRepository"] = agent.GithubURL
		doc["isAccessibleForFree"] = true
	}

	if !agent.UpdatedAt.IsZero() {
		doc["dateModified"] = agent.UpdatedAt.UTC().Format(dateLayout)
	}
	if !agent.CreatedAt.IsZero() {
		doc["datePublished"] = agent.CreatedAt.UTC().Format(dateLayout)
	}

	return doc
}

func description(agent entity.Agent) string {
	if strings.TrimSpace(agent.Description) != "" {
		return agent.Description
	}
	return agent.Name + " - AI Agent"
}

func canonicalURL(agent entity.Agent, baseURL string) string {
	switch {
	case agent.HomepageURL != "":
		return agent.HomepageURL
	case agent.GithubURL != "":
		return agent.GithubURL
	default:
		return baseURL + "/agents/" + agent.Slug
	}
}

// Provider derives the publishing organization from the GitHub owner, then the
// homepage host, then the agent name.
func Provider(agent entity.Agent) map[string]any {
	if m := githubOwnerRe.FindStringSubmatch(agent.GithubURL); m != nil {
		return map[string]any{
			"@type": "Organization",
			"name":  m[1],
			"url":   "https://github.com/" + m[1],
		}
	}

	if u, err := url.Parse(agent.HomepageURL); err == nil && u.Hostname() != "" {
		return map[string]any{
			"@type": "Organization",
			"name":  strings.TrimPrefix(u.Hostname(), "www."),
			"url":   u.Scheme + "://" + u.Host,
		}
	}

	return map[string]any{
		"@type": "Organization",
		"name":  agent.Name,
	}
}

func knownModalities(modalities []entity.Modality) []string {
	known := lo.Filter(modalities, func(m entity.Modality, _ int) bool {
		return m != entity.ModalityUnknown
	})
	return lo.Map(known, func(m entity.Modality, _ int) string {
		return string(m)
	})
}

func FeatureList(agent entity.Agent) []string {
	var features []string
	if inputs := knownModalities(agent.InputTypes); len(inputs) > 0 {
		features = append(features, "Accepts: "+strings.Join(inputs, ", "))
	}
	if outputs := knownModalities(agent.OutputTypes); len(outputs) > 0 {
		features = append(features, "Outputs: "+strings.Join(outputs, ", "))
	}
	if agent.IsMCP {
		features = append(features, "MCP (Model Context Protocol) Support")
	}
	if agent.APIDocsURL != "" {
		features = append(features, "API Documentation Available")
	}
	features = append(features, fmt.Sprintf("Signal Rank: %s (%s/10)", agent.SRTier, signalrank.FormatScore(agent.SRScore)))

	return features
}

func Keywords(agent entity.Agent) string {
	keywords := []string{"AI Agent", "AI Tool"}
	switch agent.SRTrack {
	case entity.TrackOpenSource:
		keywords = append(keywords, "Open Source", "GitHub")
	case entity.TrackSaaS:
		keywords = append(keywords, "SaaS", "Cloud Service")
	case entity.TrackHybrid:
		keywords = append(keywords, "Open Source", "SaaS", "Hybrid")
	}
	if agent.IsMCP {
		keywords = append(keywords, "MCP", "Model Context Protocol")
	}

	modalities := append(knownModalities(agent.InputTypes), knownModalities(agent.OutputTypes)...)
	keywords = append(keywords, lo.Uniq(modalities)...)

	return strings.Join(keywords, ", ")
}

// ScriptTag serializes doc inside an application/ld+json script element.
func ScriptTag(doc Document) string {
	// encoding/json escapes <, > and & so the body cannot close the script early.
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("jsonld: failed to marshal document: %v", err))
	}
	return scriptOpen + "\n" + string(body) + "\n" + scriptClose
}

// ValidateFields reports whether doc carries every required top-level field
// with a non-nil value.
func ValidateFields(doc Document) bool {
	for _, field := range requiredFields {
		if v, ok := doc[field]; !ok || v == nil {
			return false
		}
	}
	return true
}

// ExtractScript returns the body of the first ld+json script element in s.
func ExtractScript(s string) (string, bool) {
	_, rest, ok := strings.Cut(s, scriptOpen)
	if !ok {
		return "", false
	}
	body, _, ok := strings.Cut(rest, scriptClose)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(body), true
}

// IsValidString reports whether s is a JSON-LD object, either bare or wrapped
// in a script element.
func IsValidString(s string) bool {
	body, ok := ExtractScript(s)
	if !ok {
		body = strings.TrimSpace(s)
	}

	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return false
	}
	return doc != nil
}

func DeploymentInstructions(agent entity.Agent) string {
	out, err := tmpl.Execute(deploymentInstTmpl, map[string]any{
		"Name":  agent.Name,
		"Tier":  agent.SRTier,
		"Score": signalrank.FormatScore(agent.SRScore),
		"Emoji": signalrank.TierEmoji(agent.SRTier),
	})
	if err != nil {
		panic(fmt.Sprintf("jsonld: failed to render deployment instructions: %v", err))
	}
	return out
}
