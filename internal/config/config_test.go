package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leonardinius/golean/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		content  string
		expected *config.Config
		err      string
	}{
		{name: "empty keeps defaults", content: "", expected: config.Default()},
		{
			name:    "full",
			content: "verbosity: 2\nexit_code: 1\nreport:\n  prefix: \"error:\"\n  excerpt: false\n",
			expected: &config.Config{
				Verbosity: 2,
				ExitCode:  1,
				Report:    config.ReportConfig{Prefix: "error:", Excerpt: false},
			},
		},
		{
			name:    "partial",
			content: "report:\n  prefix: E\n",
			expected: &config.Config{
				ExitCode: config.DefaultExitCode,
				Report:   config.ReportConfig{Prefix: "E", Excerpt: true},
			},
		},
		{name: "unknown field", content: "colour: true\n", err: "field colour not found"},
		{name: "exit code out of range", content: "exit_code: 0\n", err: "exit_code must be in 1..125, got 0"},
		{name: "negative verbosity", content: "verbosity: -1\n", err: "verbosity must not be negative, got -1"},
		{name: "multiple documents", content: "verbosity: 1\n---\nverbosity: 2\n", err: "multiple YAML documents are not allowed"},
		{name: "wrong type", content: "exit_code: many\n", err: "cannot unmarshal"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tt.Parallel()
			cfg, err := config.Parse([]byte(tc.content))
			if tc.err != "" {
				assert.ErrorContains(tt, err, tc.err)
				assert.Nil(tt, cfg)
				return
			}
			require.NoError(tt, err)
			assert.Equal(tt, tc.expected, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "golean.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exit_code: 65\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 65, cfg.ExitCode)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("exit_code: 200\n"), 0o600))
	_, err = config.Load(bad)
	assert.EqualError(t, err, "config "+bad+": exit_code must be in 1..125, got 200")
}
