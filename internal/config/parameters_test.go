package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sootra/accessibility-app/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	config.Accessibility.MaxPayloadBytes = 0
	config.Accessibility.ContentTypes = nil
	config.Service.Path = ""

	require.NoError(t, config.SetDefaults())

	assert.Equal(t, 524288, config.Accessibility.MaxPayloadBytes)
	assert.Equal(t, "X-Requirements-Doc", config.Accessibility.RequirementsDocHeader)
	assert.Equal(t, []string{"text/plain", "text/html", "application/json"}, config.Accessibility.ContentTypes)
	assert.Equal(t, "/accessibility_part1", config.Service.Path)
}

func TestLoadFromFile(t *testing.T) {
	testCases := []struct {
		Name        string
		Content     *string
		Directory   bool
		ExpectError bool
		Expected    int
	}{
		{
			Name:     "missing_file",
			Expected: 524288,
		},
		{
			Name:        "directory",
			Directory:   true,
			ExpectError: true,
			Expected:    524288,
		},
		{
			Name:        "invalid_yaml",
			Content:     ptr("accessibility: [unterminated"),
			ExpectError: true,
			Expected:    524288,
		},
		{
			Name:     "override",
			Content:  ptr("accessibility:\n  maxPayloadBytes: 1024\nservice:\n  port: \"9090\"\n"),
			Expected: 1024,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			config.Accessibility.MaxPayloadBytes = 0
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			if tc.Directory {
				path = dir
			}
			if tc.Content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.Content), 0o600))
			}

			err := config.LoadFromFile(path)
			if tc.ExpectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, config.SetDefaults())
			assert.Equal(t, tc.Expected, config.Accessibility.MaxPayloadBytes)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("A11Y_TEST_DOTENV=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("A11Y_TEST_DOTENV") })

	require.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("A11Y_TEST_DOTENV"))
}

func ptr(s string) *string {
	return &s
}
