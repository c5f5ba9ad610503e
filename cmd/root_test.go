package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sootra/accessibility-app/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreConfig(t *testing.T) {
	t.Helper()
	global, accessibility, service, lambda := config.Global, config.Accessibility, config.Service, config.Lambda
	t.Cleanup(func() {
		config.Global, config.Accessibility, config.Service, config.Lambda = global, accessibility, service, lambda
	})
}

func TestNew_ConfigFile(t *testing.T) {
	testCases := []struct {
		Name             string
		Args             []string
		ExpectedMaxBytes int
		ExpectedPath     string
		ExpectedHeader   string
	}{
		{
			Name:             "file_values",
			Args:             []string{"--mode", "batch"},
			ExpectedMaxBytes: 1024,
			ExpectedPath:     "/custom",
			ExpectedHeader:   "X-Doc",
		},
		{
			Name:             "flags_override_file",
			Args:             []string{"--mode", "batch", "--max-payload-bytes", "2048", "--requirements-doc-header", "X-Reference"},
			ExpectedMaxBytes: 2048,
			ExpectedPath:     "/custom",
			ExpectedHeader:   "X-Reference",
		},
	}

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "global:\n  mode: lambda-http\naccessibility:\n  maxPayloadBytes: 1024\n  requirementsDocHeader: X-Doc\nservice:\n  path: /custom\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			restoreConfig(t)

			cmd := New()
			cmd.SetArgs(append([]string{"--config", path}, tc.Args...))
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)

			// The mode flag wins over the file, so the command stops before serving.
			assert.ErrorContains(t, cmd.Execute(), "invalid mode: batch")
			assert.Equal(t, tc.ExpectedMaxBytes, config.Accessibility.MaxPayloadBytes)
			assert.Equal(t, tc.ExpectedPath, config.Service.Path)
			assert.Equal(t, tc.ExpectedHeader, config.Accessibility.RequirementsDocHeader)
			assert.Equal(t, []string{"text/plain", "text/html", "application/json"}, config.Accessibility.ContentTypes)
		})
	}
}

func TestNew_InvalidConfigFile(t *testing.T) {
	restoreConfig(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accessibility: [unterminated"), 0o600))

	cmd := New()
	cmd.SetArgs([]string{"--config", path})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	assert.ErrorContains(t, cmd.Execute(), "failed to unmarshal configuration file")
}

func TestNew_InvalidMode(t *testing.T) {
	restoreConfig(t)

	cmd := New()
	cmd.SetArgs([]string{"--mode", "batch"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	assert.ErrorContains(t, cmd.Execute(), "invalid mode: batch")
}

func TestNew_Flags(t *testing.T) {
	cmd := New()

	for _, name := range []string{"config", "mode", "verbosity", "max-payload-bytes", "content-types", "requirements-doc-header", "report-s3-upload"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	svc, _, err := cmd.Find([]string{"service"})
	require.NoError(t, err)
	assert.NotNil(t, svc.PersistentFlags().Lookup("service-host-path"))

	lambdaHTTP, _, err := cmd.Find([]string{"lambda", "http"})
	require.NoError(t, err)
	assert.Equal(t, "http", lambdaHTTP.Name())
}
