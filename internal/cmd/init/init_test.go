package init

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/loctag/internal/config"
)

func writeTSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVerifyFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeTSV(t, dir, "ru.tsv", "ID\tOriginalText\n0000000000000001\tПривет\n")
	goodRef := writeTSV(t, dir, "en.tsv", "ID\tOriginalText\n0000000000000001\tHello\n")
	badHeader := writeTSV(t, dir, "bad.tsv", "Key\tValue\n")
	missing := filepath.Join(dir, "missing.tsv")

	tests := []struct {
		name       string
		cfg        config.Config
		wantErr    bool
		errContain string
	}{
		{
			name: "primary only",
			cfg:  config.Config{Primary: good},
		},
		{
			name: "primary and reference",
			cfg:  config.Config{Primary: good, Reference: goodRef},
		},
		{
			name:       "missing primary",
			cfg:        config.Config{Primary: missing},
			wantErr:    true,
			errContain: "failed to open",
		},
		{
			name:       "missing reference",
			cfg:        config.Config{Primary: good, Reference: missing},
			wantErr:    true,
			errContain: "failed to open",
		},
		{
			name:       "unexpected header",
			cfg:        config.Config{Primary: badHeader},
			wantErr:    true,
			errContain: "unexpected header",
		},
		{
			name: "custom header",
			cfg:  config.Config{Primary: badHeader, Header: "Key\tValue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifyFiles(&tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigFile_DirectoryCreation(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "deeply", "config.yml")

	cfg := config.Config{
		Primary:   "translation_ru.tsv",
		Reference: "translation_en.tsv",
	}

	err := cfg.Save(configPath)
	require.NoError(t, err)

	dirInfo, err := os.Stat(filepath.Dir(configPath))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Primary, loaded.Primary)
	assert.Equal(t, cfg.Reference, loaded.Reference)
}

func TestNewCmdInit_Flags(t *testing.T) {
	cmd := NewCmdInit()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"primary", "reference"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}

	noVerifyFlag := cmd.Flags().Lookup("no-verify")
	require.NotNil(t, noVerifyFlag)
	assert.Equal(t, "false", noVerifyFlag.DefValue)
}
