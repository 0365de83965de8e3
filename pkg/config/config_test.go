package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_ExpandsEnvOverDefaults(t *testing.T) {
	t.Setenv("VAULTGRAPH_TEST_NAME", "campaign")
	p := writeConfig(t, "name: ${VAULTGRAPH_TEST_NAME}\n")

	cfg := sample{Port: 8080}
	require.NoError(t, Load(p, &cfg))
	assert.Equal(t, "campaign", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_ValidationError(t *testing.T) {
	p := writeConfig(t, "port: 1\n")
	err := Load(p, &sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoad_BadYAML(t *testing.T) {
	p := writeConfig(t, "name: [unterminated\n")
	assert.Error(t, Load(p, &sample{}))
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	cfg := sample{Name: "default"}
	found, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &cfg)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "default", cfg.Name)
}

func TestLoadOptional_MissingFileStillValidates(t *testing.T) {
	_, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &sample{})
	assert.Error(t, err)
}
