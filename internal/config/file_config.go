package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	baseURLVar   = "BASE_URL"
	tokenPathVar = "TOKEN_PATH"
	logLevelVar  = "LOG_LEVEL"
)

// File holds the YAML-file portion of the configuration.
type File struct {
	BaseURL   string `yaml:"base_url"`
	TokenPath string `yaml:"token_path"`

	Log struct {
		Level   string `yaml:"level"`
		Enabled *bool  `yaml:"enabled"`
	} `yaml:"log"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"rate_limit"`
}

var _ ClientConfig = File{}

// LoadFile reads a YAML config file and applies defaults for anything left
// unset. A missing file is not an error, the defaults apply.
func LoadFile(filename string) (*File, error) {
	f := &File{}
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, f); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	// Set defaults if not specified
	if f.BaseURL == "" {
		f.BaseURL = "http://localhost:8000/api/v1"
	}
	if f.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		f.TokenPath = filepath.Join(home, ".tenantctl", "token")
	}
	return f, nil
}

func (f File) GetBaseURL() string {
	return GetEnv(baseURLVar, f.BaseURL)
}

func (f File) GetTokenPath() string {
	return GetEnv(tokenPathVar, f.TokenPath)
}

func (f File) GetLogLevel() string {
	return GetEnv(logLevelVar, f.Log.Level)
}

func (f File) GetLogEnabled() bool {
	if v := os.Getenv("LOG_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err == nil {
			return enabled
		}
	}
	if f.Log.Enabled != nil {
		return *f.Log.Enabled
	}
	return true
}

func (f File) GetRequestsPerSecond() float64 {
	return f.RateLimit.RequestsPerSecond
}
