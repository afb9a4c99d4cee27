package directory

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/habiliai/signalrank/entity"
	"github.com/habiliai/signalrank/errors"
)

// LoadAgentFile reads one YAML or JSON file holding either a single agent or
// a list of agents.
func LoadAgentFile(file string) ([]entity.Agent, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", file)
	}

	return ParseAgents(raw)
}

func ParseAgents(raw []byte) ([]entity.Agent, error) {
	jsonBytes, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "invalid agent document: %v", err)
	}
	jsonBytes = bytes.TrimSpace(jsonBytes)
	if len(jsonBytes) == 0 || bytes.Equal(jsonBytes, []byte("null")) {
		return nil, nil
	}

	if jsonBytes[0] == '[' {
		var agents []entity.Agent
		if err := json.Unmarshal(jsonBytes, &agents); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidParams, "invalid agent list: %v", err)
		}
		return agents, nil
	}

	var agent entity.Agent
	if err := json.Unmarshal(jsonBytes, &agent); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "invalid agent: %v", err)
	}
	return []entity.Agent{agent}, nil
}

// LoadAgentFiles accepts files and directories. Directories are scanned one
// level deep for .yaml, .yml and .json files in name order.
func LoadAgentFiles(paths []string) ([]entity.Agent, error) {
	var agents []entity.Agent
	for _, path := range paths {
		files, err := expandPath(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			loaded, err := LoadAgentFile(file)
			if err != nil {
				return nil, err
			}
			agents = append(agents, loaded...)
		}
	}
	return agents, nil
}

func expandPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat %s", path)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dir %s", path)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}
