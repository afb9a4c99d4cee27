package directory

import (
	"time"

	"github.com/habiliai/signalrank/entity"
	"gorm.io/datatypes"
)

type agentRecord struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Slug            string `gorm:"column:slug;uniqueIndex;not null"`
	Name            string `gorm:"not null"`
	Description     string
	MetaDescription string
	GithubURL       string `gorm:"column:github_url"`
	HomepageURL     string `gorm:"column:homepage_url"`
	APIDocsURL      string `gorm:"column:api_docs_url"`
	OGImageURL      string `gorm:"column:og_image_url"`
	Pricing         string
	GithubStars     int
	GithubForks     int

	SRScore float64      `gorm:"column:sr_score;index"`
	SRTier  entity.Tier  `gorm:"column:sr_tier;index"`
	SRTrack entity.Track `gorm:"column:sr_track"`

	IsMCP      bool `gorm:"column:is_mcp"`
	IsClaimed  bool
	IsVerified bool

	InputTypes     datatypes.JSONSlice[entity.Modality]
	OutputTypes    datatypes.JSONSlice[entity.Modality]
	ScoreBreakdown datatypes.JSONType[entity.ScoreBreakdown]
}

func (agentRecord) TableName() string {
	return "agents"
}

func newAgentRecord(agent entity.Agent) agentRecord {
	return agentRecord{
		CreatedAt:       agent.CreatedAt,
		UpdatedAt:       agent.UpdatedAt,
		Slug:            agent.Slug,
		Name:            agent.Name,
		Description:     agent.Description,
		MetaDescription: agent.MetaDescription,
		GithubURL:       agent.GithubURL,
		HomepageURL:     agent.HomepageURL,
		APIDocsURL:      agent.APIDocsURL,
		OGImageURL:      agent.OGImageURL,
		Pricing:         agent.Pricing,
		GithubStars:     agent.GithubStars,
		GithubForks:     agent.GithubForks,
		SRScore:         agent.SRScore,
		SRTier:          agent.SRTier,
		SRTrack:         agent.SRTrack,
		IsMCP:           agent.IsMCP,
		IsClaimed:       agent.IsClaimed,
		IsVerified:      agent.IsVerified,
		InputTypes:      datatypes.JSONSlice[entity.Modality](agent.InputTypes),
		OutputTypes:     datatypes.JSONSlice[entity.Modality](agent.OutputTypes),
		ScoreBreakdown:  datatypes.NewJSONType(agent.ScoreBreakdown),
	}
}

func (r *agentRecord) toEntity() entity.Agent {
	return entity.Agent{
		Slug:            r.Slug,
		Name:            r.Name,
		Description:     r.Description,
		MetaDescription: r.MetaDescription,
		GithubURL:       r.GithubURL,
		HomepageURL:     r.HomepageURL,
		APIDocsURL:      r.APIDocsURL,
		OGImageURL:      r.OGImageURL,
		Pricing:         r.Pricing,
		GithubStars:     r.GithubStars,
		GithubForks:     r.GithubForks,
		SRScore:         r.SRScore,
		SRTier:          r.SRTier,
		SRTrack:         r.SRTrack,
		IsMCP:           r.IsMCP,
		IsClaimed:       r.IsClaimed,
		IsVerified:      r.IsVerified,
		InputTypes:      []entity.Modality(r.InputTypes),
		OutputTypes:     []entity.Modality(r.OutputTypes),
		ScoreBreakdown:  r.ScoreBreakdown.Data(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Models lists the tables owned by this package, for migrations.
func Models() []any {
	return []any{&agentRecord{}}
}
