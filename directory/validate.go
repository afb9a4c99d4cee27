package directory

import (
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/internal/stringutils"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateAgent checks a submitted listing. Every failure wraps
// errors.ErrInvalidParams.
func ValidateAgent(agent entity.Agent) error {
	if !slugRe.MatchString(agent.Slug) {
		return errors.Wrapf(errors.ErrInvalidParams, "slug %q must be lowercase letters, digits and single dashes", agent.Slug)
	}
	if strings.TrimSpace(agent.Name) == "" {
		return errors.Wrapf(errors.ErrInvalidParams, "name is required")
	}

	for _, field := range []struct{ name, value string }{
		{"githubUrl", agent.GithubURL},
		{"homepageUrl", agent.HomepageURL},
		{"apiDocsUrl", agent.APIDocsURL},
		{"ogImageUrl", agent.OGImageURL},
	} {
		if field.value == "" {
			continue
		}
		u, err := url.Parse(field.value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.Wrapf(errors.ErrInvalidParams, "%s %q is not an http(s) URL", field.name, field.value)
		}
	}

	if agent.SRTrack != "" && !agent.SRTrack.Valid() {
		return errors.Wrapf(errors.ErrInvalidParams, "unknown track %q", agent.SRTrack)
	}
	for _, m := range append(append([]entity.Modality{}, agent.InputTypes...), agent.OutputTypes...) {
		if !m.Valid() {
			return errors.Wrapf(errors.ErrInvalidParams, "unknown modality %q", m)
		}
	}
	for _, v := range agent.ScoreBreakdown.Values() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(errors.ErrInvalidParams, "sub-scores must be finite and non-negative, got %v", v)
		}
	}
	if agent.GithubStars < 0 || agent.GithubForks < 0 {
		return errors.Wrapf(errors.ErrInvalidParams, "github stats must be non-negative")
	}

	return nil
}

// normalizeAgent cleans free text and fills the track when the submitter left
// it empty.
func normalizeAgent(agent *entity.Agent) {
	agent.Slug = strings.TrimSpace(agent.Slug)
	agent.Name = stringutils.CleanLine(agent.Name)
	agent.Description = stringutils.Clean(agent.Description)
	agent.MetaDescription = stringutils.Clean(agent.MetaDescription)
	agent.Pricing = stringutils.CleanLine(agent.Pricing)

	if agent.SRTrack == "" {
		agent.SRTrack = InferTrack(*agent)
	}
}

// InferTrack classifies provenance from the known URLs: a repository alone is
// open source, a repository plus a homepage is hybrid, anything else is SaaS.
func InferTrack(agent entity.Agent) entity.Track {
	switch {
	case agent.GithubURL != "" && agent.HomepageURL != "":
		return entity.TrackHybrid
	case agent.GithubURL != "":
		return entity.TrackOpenSource
	default:
		return entity.TrackSaaS
	}
}
