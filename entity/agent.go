package entity

import (
	"time"
)

// Tier is the ordinal Signal Rank class of an agent, from S (best) to C.
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Valid returns true if the tier is a known value.
func (t Tier) Valid() bool {
	switch t {
	case TierS, TierA, TierB, TierC:
		return true
	default:
		return false
	}
}

// Rank orders tiers so that C < B < A < S.
func (t Tier) Rank() int {
	switch t {
	case TierS:
		return 3
	case TierA:
		return 2
	case TierB:
		return 1
	default:
		return 0
	}
}

// Track classifies where an agent comes from.
type Track string

const (
	TrackOpenSource Track = "OpenSource"
	TrackSaaS       Track = "SaaS"
	TrackHybrid     Track = "Hybrid"
)

func (t Track) Valid() bool {
	switch t {
	case TrackOpenSource, TrackSaaS, TrackHybrid:
		return true
	default:
		return false
	}
}

// Modality is an input or output type an agent handles.
type Modality string

const (
	ModalityText    Modality = "Text"
	ModalityImage   Modality = "Image"
	ModalityAudio   Modality = "Audio"
	ModalityJSON    Modality = "JSON"
	ModalityCode    Modality = "Code"
	ModalityFile    Modality = "File"
	ModalityVideo   Modality = "Video"
	ModalityUnknown Modality = "Unknown"
)

func (m Modality) Valid() bool {
	switch m {
	case ModalityText, ModalityImage, ModalityAudio, ModalityJSON, ModalityCode, ModalityFile, ModalityVideo, ModalityUnknown:
		return true
	default:
		return false
	}
}

// ScoreBreakdown holds the named sub-scores an agent's Signal Rank is built from.
type ScoreBreakdown struct {
	StarsScore     float64 `json:"starsScore"`
	ForksScore     float64 `json:"forksScore"`
	VitalityScore  float64 `json:"vitalityScore"`
	ReadinessScore float64 `json:"readinessScore"`
	ProtocolScore  float64 `json:"protocolScore"`
	TrustScore     float64 `json:"trustScore"`
	AEOScore       float64 `json:"aeoScore"`
	InteropScore   float64 `json:"interopScore"`
}

// Values returns the sub-scores in declaration order.
func (b ScoreBreakdown) Values() []float64 {
	return []float64{
		b.StarsScore,
		b.ForksScore,
		b.VitalityScore,
		b.ReadinessScore,
		b.ProtocolScore,
		b.TrustScore,
		b.AEOScore,
		b.InteropScore,
	}
}

// Agent is a directory listing. The Signal Rank generators only read it.
type Agent struct {
	Slug            string `json:"slug" jsonschema:"required,pattern=^[a-z0-9]+(-[a-z0-9]+)*$"`
	Name            string `json:"name" jsonschema:"required,minLength=1"`
	Description     string `json:"description,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`

	GithubURL   string `json:"githubUrl,omitempty" jsonschema:"format=uri"`
	HomepageURL string `json:"homepageUrl,omitempty" jsonschema:"format=uri"`
	APIDocsURL  string `json:"apiDocsUrl,omitempty" jsonschema:"format=uri"`
	OGImageURL  string `json:"ogImageUrl,omitempty" jsonschema:"format=uri"`
	Pricing     string `json:"pricing,omitempty"`

	GithubStars int `json:"githubStars,omitempty"`
	GithubForks int `json:"githubForks,omitempty"`

	SRScore float64 `json:"srScore" jsonschema:"minimum=0,maximum=10"`
	SRTier  Tier    `json:"srTier" jsonschema:"enum=S,enum=A,enum=B,enum=C"`
	SRTrack Track   `json:"srTrack" jsonschema:"enum=OpenSource,enum=SaaS,enum=Hybrid"`

	IsMCP      bool `json:"isMcp"`
	IsClaimed  bool `json:"isClaimed"`
	IsVerified bool `json:"isVerified"`

	InputTypes     []Modality     `json:"inputTypes"`
	OutputTypes    []Modality     `json:"outputTypes"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
