package config

import "time"

// Config is the composed configuration surface for the console.
// Values resolve in order: environment variable, config file, default.
type Config interface {
	EnvConfig
	ConsoleConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetSessionFile() string
	GetHTTPTimeout() time.Duration
}

type ConsoleConfig interface {
	GetBaseURL() string
	GetClientID() string
	GetScopes() []string
	GetCallbackAddr() string
}

type mainConfig struct {
	EnvVars
}

// New builds a Config backed by environment variables and, when present,
// the yaml config file at the default location (~/.uidam/config.yaml).
func New() Config {
	return mainConfig{EnvVars{file: loadDefaultFile()}}
}

// NewWithFile builds a Config reading overrides from the given yaml file.
// A missing file is not an error; env vars still apply.
func NewWithFile(path string) (Config, error) {
	fv, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars{file: fv}}, nil
}
