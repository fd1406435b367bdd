package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ddp-generator/internal/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "DDP_TEMPLATE.pptx", cfg.TemplatePath)
	assert.Equal(t, 1, cfg.Layout())
	assert.Equal(t, "output", cfg.DefaultOutputDir)
	assert.Equal(t, "DDP_", cfg.FilePrefix)
	assert.Equal(t, ".pptx", cfg.FileExtension)
	assert.Equal(t, models.StepRegex, cfg.StepPattern)
	assert.Equal(t, "Text Placeholder 2", cfg.Placeholders.Header)
	assert.Equal(t, "Text Placeholder 3", cfg.Placeholders.Description)
	assert.Equal(t, "Text Placeholder 1", cfg.Placeholders.Rules)
	assert.False(t, cfg.Reports.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
template_path: templates/ddp.pptx
default_layout_index: 0
file_prefix: MAPA_
placeholders:
  header: Title 1
reports:
  enabled: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "templates", "ddp.pptx"), cfg.TemplatePath)
	assert.Equal(t, 0, cfg.Layout())
	assert.Equal(t, "MAPA_", cfg.FilePrefix)
	assert.Equal(t, "Title 1", cfg.Placeholders.Header)
	assert.True(t, cfg.Reports.Enabled)

	// untouched keys keep their defaults
	assert.Equal(t, ".pptx", cfg.FileExtension)
	assert.Equal(t, "Text Placeholder 3", cfg.Placeholders.Description)
	assert.Equal(t, models.StepRegex, cfg.StepPattern)
}

func TestLoadConfigAbsoluteTemplate(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "ddp.pptx")
	cfg, err := LoadConfig(writeConfig(t, "template_path: "+abs+"\n"))
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.TemplatePath)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "template_path: [unclosed\n"},
		{name: "negative layout", content: "default_layout_index: -1\n"},
		{name: "bad pattern", content: "step_pattern: '# ETAPA (\\d+'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Layout())
	assert.Equal(t, "{Nome Processo}", cfg.Placeholders.ProcessToken)
	assert.Equal(t, "DDP_TEMPLATE.pptx", filepath.Base(cfg.TemplatePath))
}
