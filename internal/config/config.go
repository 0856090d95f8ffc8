package config

type Config interface {
	EnvConfig
	ClientConfig
}

type EnvConfig interface {
	GetEnv() string
	GetAppName() string
}

type ClientConfig interface {
	GetBaseURL() string
	GetTokenPath() string
	GetLogLevel() string
	GetLogEnabled() bool
	GetRequestsPerSecond() float64
}

type mainConfig struct {
	EnvVars
	File
}

// New builds configuration from the environment plus an optional YAML file.
// File values win over defaults; environment variables win over the file.
func New(path string) (Config, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return mainConfig{File: *f}, nil
}
