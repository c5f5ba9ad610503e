// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const (
	// ModeService runs the application as a standalone HTTP service.
	ModeService = "service"
	// ModeLambdaHTTP runs the application as an AWS Lambda function behind an HTTP trigger.
	ModeLambdaHTTP = "lambda-http"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Accessibility is a struct that contains the configuration of the accessibility endpoint.
	Accessibility accessibility
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"service"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
	// S3 is a struct that contains the configuration for S3.
	S3 struct {
		Upload struct {
			BucketName string `yaml:"bucketName,omitempty"`
			Enabled    bool   `yaml:"enabled,omitempty"`
		} `yaml:"upload,omitempty"`
	} `yaml:"s3,omitempty"`
}

type accessibility struct {
	// RequirementsDocHeader is the header carrying the requirements document reference.
	RequirementsDocHeader string `yaml:"requirementsDocHeader,omitempty" default:"X-Requirements-Doc"`
	// ContentTypes is the list of accepted request media types.
	ContentTypes []string `yaml:"contentTypes,omitempty" default:"[\"text/plain\", \"text/html\", \"application/json\"]"`
	// MaxPayloadBytes is the largest accepted request body.
	MaxPayloadBytes int `yaml:"maxPayloadBytes,omitempty" default:"524288"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/accessibility_part1"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"30s"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Accessibility),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global        global        `yaml:"global,omitempty"`
		Accessibility accessibility `yaml:"accessibility,omitempty"`
		Service       service       `yaml:"service,omitempty"`
		Lambda        lambda        `yaml:"lambda,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Accessibility = a.Accessibility
	Service = a.Service
	Lambda = a.Lambda

	return nil
}
