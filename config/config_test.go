package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTargets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTargets(t *testing.T) {
	path := writeTargets(t, `
keywords:
  - brake pads
  - oil filter
locations:
  - Berlin
  - Munich
`)

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"brake pads", "oil filter"}, targets.Keywords)
	assert.Equal(t, []string{"Berlin", "Munich"}, targets.Locations)
}

func TestLoadTargets_MissingFile(t *testing.T) {
	_, err := LoadTargets(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTargets_InvalidYAML(t *testing.T) {
	path := writeTargets(t, "keywords: [unclosed")
	_, err := LoadTargets(path)
	assert.Error(t, err)
}

func TestTargets_Validate(t *testing.T) {
	tests := []struct {
		name    string
		targets Targets
		wantErr bool
	}{
		{"valid", Targets{Keywords: []string{"brake pads"}, Locations: []string{"Berlin"}}, false},
		{"no keywords", Targets{Locations: []string{"Berlin"}}, true},
		{"no locations", Targets{Keywords: []string{"brake pads"}}, true},
		{"blank keyword", Targets{Keywords: []string{"  "}, Locations: []string{"Berlin"}}, true},
		{"blank location", Targets{Keywords: []string{"brake pads"}, Locations: []string{""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.targets.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargets_Pairs(t *testing.T) {
	targets := Targets{
		Keywords:  []string{"brake pads", "oil filter"},
		Locations: []string{"Berlin", "Munich"},
	}

	pairs := targets.Pairs()
	require.Len(t, pairs, 4)
	assert.Equal(t, [2]string{"brake pads", "Berlin"}, pairs[0])
	assert.Equal(t, [2]string{"oil filter", "Munich"}, pairs[3])
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "https://www.google.com", cfg.BaseURL)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.True(t, cfg.Headless)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MAX_RETRIES", "7")
	t.Setenv("HEADLESS", "false")

	cfg := Load()
	assert.Equal(t, 7, cfg.MaxRetries)
	assert.False(t, cfg.Headless)
}
