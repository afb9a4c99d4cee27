package artifact_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jcooky/go-din"
	"github.com/stretchr/testify/suite"

	"github.com/habiliai/signalrank/artifact"
	"github.com/habiliai/signalrank/directory"
	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/internal/mytesting"
	"github.com/habiliai/signalrank/jsonld"
	"github.com/habiliai/signalrank/prompt"
)

type ServiceTestSuite struct {
	mytesting.Suite

	service artifact.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.Suite.SetupTest()

	s.service = din.MustGetT[artifact.Service](s.Container)

	manager := din.MustGetT[directory.Manager](s.Container)
	_, err := manager.SubmitAgent(s.Context, entity.Agent{
		Slug:        "doc-bot",
		Name:        "Doc Bot",
		Description: "Answers questions about your API docs. Requires an API key.",
		GithubURL:   "https://github.com/acme/doc-bot",
		APIDocsURL:  "https://acme.dev/docs",
		IsMCP:       true,
		InputTypes:  []entity.Modality{entity.ModalityText},
		OutputTypes: []entity.Modality{entity.ModalityJSON},
		SRScore:     8.2,
	})
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TestGenerateJSONLD() {
	resp, err := s.service.Generate(s.Context, &artifact.GenerateRequest{AgentSlug: "doc-bot", Type: artifact.TypeJSONLD})
	s.Require().NoError(err)
	s.Require().NotNil(resp.JSONLD)
	s.Nil(resp.Badge)
	s.Nil(resp.Prompt)

	s.Equal("Doc Bot", resp.JSONLD.JSONLD["name"])
	s.True(jsonld.IsValidString(resp.JSONLD.JSONLDString))
	s.Same(resp.JSONLD, resp.Output())
}

func (s *ServiceTestSuite) TestGenerateBadge() {
	resp, err := s.service.Generate(s.Context, &artifact.GenerateRequest{AgentSlug: "doc-bot", Type: artifact.TypeBadge})
	s.Require().NoError(err)
	s.Require().NotNil(resp.Badge)

	s.Equal(entity.TierA, resp.Badge.Tier)
	s.True(strings.HasSuffix(resp.Badge.SvgURL, "/api/badge/doc-bot.svg"))
	s.Contains(resp.Badge.SvgContent, "8.2")
}

func (s *ServiceTestSuite) TestGeneratePrompt() {
	resp, err := s.service.Generate(s.Context, &artifact.GenerateRequest{AgentSlug: "doc-bot", Type: artifact.TypePrompt})
	s.Require().NoError(err)
	s.Require().NotNil(resp.Prompt)

	s.Equal(prompt.KindMCP, resp.Prompt.Template)
	s.Contains(resp.Prompt.SystemPrompt, "Doc Bot")
	s.True(resp.Prompt.RequiresAPIKey)
	s.Contains(resp.Prompt.SystemPrompt, prompt.KeyPlaceholder)
}

func (s *ServiceTestSuite) TestGenerateRejectsBadInput() {
	_, err := s.service.Generate(s.Context, &artifact.GenerateRequest{AgentSlug: "", Type: artifact.TypeBadge})
	s.ErrorIs(err, errors.ErrInvalidParams)

	_, err = s.service.Generate(s.Context, &artifact.GenerateRequest{AgentSlug: "doc-bot", Type: "pdf"})
	s.ErrorIs(err, errors.ErrInvalidParams)

	_, err = s.service.Generate(s.Context, &artifact.GenerateRequest{AgentSlug: "ghost", Type: artifact.TypeJSONLD})
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *ServiceTestSuite) TestBadge() {
	b, err := s.service.Badge(s.Context, "doc-bot")
	s.Require().NoError(err)
	s.Contains(b.SvgContent, "<svg")

	_, err = s.service.Badge(s.Context, "ghost")
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *ServiceTestSuite) TestResponseJSONCarriesOnlySelectedOutput() {
	resp, err := s.service.Generate(s.Context, &artifact.GenerateRequest{AgentSlug: "doc-bot", Type: artifact.TypePrompt})
	s.Require().NoError(err)

	raw, err := json.Marshal(resp)
	s.Require().NoError(err)

	var fields map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(raw, &fields))
	s.Contains(fields, "prompt")
	s.NotContains(fields, "jsonld")
	s.NotContains(fields, "badge")
}

func TestService(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
