package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_NoSources(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, dir, DefaultFile, `
timeout: 5s
user_agent: from-yaml
port: 9000
log_level: debug
ter_api_url: https://ter.example.org/api/v1
`)
	env := writeFile(t, dir, ".env", "TYPO3DOCS_USER_AGENT=from-dotenv\nTYPO3DOCS_PORT=9100\n")
	t.Setenv("TYPO3DOCS_PORT", "9200")

	cfg, err := Load("", env)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Timeout, "yaml overrides defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://ter.example.org/api/v1", cfg.TERAPIURL)
	assert.Equal(t, "from-dotenv", cfg.UserAgent, ".env overrides yaml")
	assert.Equal(t, 9200, cfg.Port, "process env overrides .env")
	assert.Equal(t, Default().DocsBaseURL, cfg.DocsBaseURL)

	_, set := os.LookupEnv("TYPO3DOCS_USER_AGENT")
	assert.False(t, set, ".env values are not exported to the process")
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yaml", "log_format: json\ncontent_file: ./curated.yaml\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "./curated.yaml", cfg.ContentFile)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_MissingEnvFileIsSkipped(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("", "does-not-exist.env")
	assert.NoError(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		yaml string
	}{
		{name: "Bad Timeout Env", env: map[string]string{"TYPO3DOCS_TIMEOUT": "soon"}},
		{name: "Bad Port Env", env: map[string]string{"TYPO3DOCS_PORT": "eighty"}},
		{name: "Port Out Of Range", env: map[string]string{"TYPO3DOCS_PORT": "70000"}},
		{name: "Relative URL", env: map[string]string{"TYPO3DOCS_TER_API_URL": "/api"}},
		{name: "Unknown Log Format", env: map[string]string{"TYPO3DOCS_LOG_FORMAT": "xml"}},
		{name: "Unknown Log Level", yaml: "log_level: loud\n"},
		{name: "Negative Input Size", yaml: "max_input_size: -1\n"},
		{name: "Broken YAML", yaml: "timeout: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			if tt.yaml != "" {
				writeFile(t, dir, DefaultFile, tt.yaml)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
