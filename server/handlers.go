package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/mokiat/gog"

	"github.com/habiliai/signalrank/artifact"
	"github.com/habiliai/signalrank/directory"
	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
	"github.com/habiliai/signalrank/internal/mylog"
)

const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return errors.Wrapf(errors.ErrInvalidRequest, "invalid request body: %v", err)
	}
	return nil
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req artifact.GenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(s.logger, w, err)
		return
	}

	resp, err := s.artifacts.Generate(r.Context(), &req)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	writeJSON(s.logger, w, http.StatusOK, resp.Output())
}

func (s *Server) badge(w http.ResponseWriter, r *http.Request) {
	b, err := s.artifacts.Badge(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(b.SvgContent)); err != nil {
		s.logger.Warn("failed to write badge", "slug", b.Slug, mylog.Err(err))
	}
}

func parseListOptions(r *http.Request) (directory.ListOptions, error) {
	q := r.URL.Query()

	var opts directory.ListOptions
	if v := q.Get("tier"); v != "" {
		tier := entity.Tier(strings.ToUpper(v))
		if !tier.Valid() {
			return opts, errors.Wrapf(errors.ErrInvalidParams, "unknown tier %q", v)
		}
		opts.Tier = gog.PtrOf(tier)
	}
	if v := q.Get("track"); v != "" {
		track := entity.Track(v)
		if !track.Valid() {
			return opts, errors.Wrapf(errors.ErrInvalidParams, "unknown track %q", v)
		}
		opts.Track = gog.PtrOf(track)
	}
	if v := q.Get("mcp"); v != "" {
		mcpOnly, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrapf(errors.ErrInvalidParams, "mcp must be a boolean")
		}
		opts.MCPOnly = mcpOnly
	}
	for _, field := range []struct {
		name string
		dst  *int
	}{
		{"offset", &opts.Offset},
		{"limit", &opts.Limit},
	} {
		v := q.Get(field.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errors.Wrapf(errors.ErrInvalidParams, "%s must be a non-negative integer", field.name)
		}
		*field.dst = n
	}

	return opts, nil
}

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	agents, err := s.directory.ListAgents(r.Context(), opts)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	writeJSON(s.logger, w, http.StatusOK, agents)
}

func (s *Server) submitAgent(w http.ResponseWriter, r *http.Request) {
	var agent entity.Agent
	if err := decodeBody(w, r, &agent); err != nil {
		writeError(s.logger, w, err)
		return
	}

	saved, err := s.directory.SubmitAgent(r.Context(), agent)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	writeJSON(s.logger, w, http.StatusCreated, saved)
}

func (s *Server) getAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := s.directory.GetAgent(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	writeJSON(s.logger, w, http.StatusOK, agent)
}

func (s *Server) deleteAgent(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteAgent(r.Context(), mux.Vars(r)["slug"]); err != nil {
		writeError(s.logger, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) compareAgents(w http.ResponseWriter, r *http.Request) {
	var slugs []string
	for _, slug := range strings.Split(r.URL.Query().Get("slugs"), ",") {
		if slug = strings.TrimSpace(slug); slug != "" {
			slugs = append(slugs, slug)
		}
	}

	agents, err := s.directory.CompareAgents(r.Context(), slugs)
	if err != nil {
		writeError(s.logger, w, err)
		return
	}

	writeJSON(s.logger, w, http.StatusOK, agents)
}
