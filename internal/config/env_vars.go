package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	baseURLVar      = "UIDAM_BASE_URL"
	clientIDVar     = "UIDAM_CLIENT_ID"
	scopesVar       = "UIDAM_SCOPES"
	sessionFileVar  = "UIDAM_SESSION_FILE"
	callbackAddrVar = "UIDAM_CALLBACK_ADDR"
	httpTimeoutVar  = "UIDAM_HTTP_TIMEOUT"
	appNameVar      = "APP_NAME"
)

type EnvVars struct {
	file *FileValues
}

var _ Config = EnvVars{}

func (e EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "UIDAM Console")
}

func (e EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBaseURL returns the UIDAM platform base URL (e.g. "https://uidam.example.com")
// All REST and OAuth2 endpoints are resolved against it.
func (e EnvVars) GetBaseURL() string {
	return e.lookup(baseURLVar, e.file.baseURL(), "http://localhost:9443")
}

func (e EnvVars) GetClientID() string {
	return e.lookup(clientIDVar, e.file.clientID(), "uidam-portal")
}

func (e EnvVars) GetScopes() []string {
	scopes := e.lookup(scopesVar, e.file.scopes(), "openid profile email")
	return strings.Fields(scopes)
}

// GetCallbackAddr returns the loopback address the login flow listens on
// for the authorization-code redirect.
func (e EnvVars) GetCallbackAddr() string {
	return e.lookup(callbackAddrVar, e.file.callbackAddr(), "127.0.0.1:8843")
}

func (e EnvVars) GetSessionFile() string {
	if v := e.lookup(sessionFileVar, e.file.sessionFile(), ""); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".uidam-session"
	}
	return filepath.Join(home, ".uidam", "session")
}

func (e EnvVars) GetHTTPTimeout() time.Duration {
	raw := e.lookup(httpTimeoutVar, e.file.httpTimeout(), "30s")
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func (e EnvVars) lookup(envVar, fileValue, defaultValue string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
