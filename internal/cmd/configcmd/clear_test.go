package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/loctag/internal/config"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "loctag", "config.yml")
	require.NoError(t, (&config.Config{Primary: "translation_ru.tsv"}).Save(configPath))

	var buf bytes.Buffer
	require.NoError(t, runClear(&buf, configPath, true))
	assert.Contains(t, buf.String(), "Configuration cleared from "+configPath)

	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunClear_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var buf bytes.Buffer
	require.NoError(t, runClear(&buf, filepath.Join(t.TempDir(), "config.yml"), true))
	assert.Contains(t, buf.String(), "No config file to remove")
}

func TestRunClear_Idempotent(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	var buf bytes.Buffer
	require.NoError(t, runClear(&buf, configPath, true))
	require.NoError(t, runClear(&buf, configPath, true))
}

func TestRunClear_ReportsActiveEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOCTAG_PRIMARY", "env_ru.tsv")

	var buf bytes.Buffer
	require.NoError(t, runClear(&buf, filepath.Join(t.TempDir(), "config.yml"), true))
	assert.Contains(t, buf.String(), "Environment variables will still be used: [LOCTAG_PRIMARY]")
}
