package badge

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/signalrank"
)

const (
	DefaultName = "Agent"

	maxNameRunes = 12
	ellipsis     = "…"

	height       = 20
	charWidth    = 7
	namePadding  = 10
	nameMinWidth = 50
	scoreWidth   = 55
	nameColor    = "#555"
)

type (
	Badge struct {
		Slug       string      `json:"slug"`
		SvgURL     string      `json:"svgUrl"`
		ReportURL  string      `json:"reportUrl"`
		SvgContent string      `json:"svgContent"`
		EmbedCode  string      `json:"embedCode"`
		Markdown   string      `json:"markdown"`
		Tier       entity.Tier `json:"tier"`
		Color      string      `json:"color"`
		Score      float64     `json:"score"`
	}

	options struct {
		name    string
		baseURL string
	}
	Option func(*options)
)

// WithName sets the label shown on the left half of the badge. Empty names
// fall back to DefaultName.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// Generate builds the badge for an agent. Inputs are trusted: the slug must
// already be URL-safe and the tier one of S, A, B or C.
func Generate(slug string, tier entity.Tier, score float64, opts ...Option) *Badge {
	o := options{
		name:    DefaultName,
		baseURL: signalrank.DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	svgURL := o.baseURL + "/api/badge/" + slug + ".svg"
	reportURL := o.baseURL + "/agents/" + slug
	alt := fmt.Sprintf("Signal Rank: %s (%s)", tier, signalrank.FormatScore(score))

	return &Badge{
		Slug:       slug,
		SvgURL:     svgURL,
		ReportURL:  reportURL,
		SvgContent: SvgContent(o.name, tier, score),
		EmbedCode: fmt.Sprintf(
			`<a href="%s" target="_blank" rel="noopener"><img src="%s" alt="%s" /></a>`,
			reportURL, svgURL, alt,
		),
		Markdown: fmt.Sprintf("[![%s](%s)](%s)", alt, svgURL, reportURL),
		Tier:     tier,
		Color:    signalrank.TierColor(tier),
		Score:    score,
	}
}

// DisplayName truncates names longer than 12 runes to 11 runes plus an ellipsis.
func DisplayName(name string) string {
	if name == "" {
		name = DefaultName
	}
	if utf8.RuneCountInString(name) <= maxNameRunes {
		return name
	}
	return string([]rune(name)[:maxNameRunes-1]) + ellipsis
}

// Label is the text on the colored half of the badge.
func Label(tier entity.Tier, score float64) string {
	return fmt.Sprintf("SR %s %s", tier, signalrank.FormatScore(score))
}

func nameWidth(displayName string) int {
	return max(nameMinWidth, utf8.RuneCountInString(displayName)*charWidth+namePadding)
}

// SvgContent renders a self-contained two-segment SVG badge.
func SvgContent(name string, tier entity.Tier, score float64) string {
	if name == "" {
		name = DefaultName
	}
	displayName := DisplayName(name)
	color := signalrank.TierColor(tier)
	label := Label(tier, score)
	title := html.EscapeString(fmt.Sprintf("%s: Signal Rank %s %s", name, tier, signalrank.FormatScore(score)))

	nw := nameWidth(displayName)
	total := nw + scoreWidth

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" role="img" aria-label="%s">`, total, height, title)
	fmt.Fprintf(&b, `<title>%s</title>`, title)
	b.WriteString(`<linearGradient id="s" x2="0" y2="100%"><stop offset="0" stop-color="#bbb" stop-opacity=".1"/><stop offset="1" stop-opacity=".1"/></linearGradient>`)
	fmt.Fprintf(&b, `<clipPath id="r"><rect width="%d" height="%d" rx="3" fill="#fff"/></clipPath>`, total, height)
	b.WriteString(`<g clip-path="url(#r)">`)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, nw, height, nameColor)
	fmt.Fprintf(&b, `<rect x="%d" width="%d" height="%d" fill="%s"/>`, nw, scoreWidth, height, color)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="url(#s)"/>`, total, height)
	b.WriteString(`</g>`)
	b.WriteString(`<g fill="#fff" text-anchor="middle" font-family="Verdana,Geneva,DejaVu Sans,sans-serif" font-size="11">`)
	fmt.Fprintf(&b, `<text x="%.1f" y="14">%s</text>`, float64(nw)/2, html.EscapeString(displayName))
	fmt.Fprintf(&b, `<text x="%.1f" y="14">%s</text>`, float64(nw)+float64(scoreWidth)/2, label)
	b.WriteString(`</g></svg>`)

	return b.String()
}
