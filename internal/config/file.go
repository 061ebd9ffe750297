package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileValues mirrors the optional yaml config file:
//
//	baseURL: https://uidam.example.com
//	clientID: uidam-portal
//	scopes: openid profile email
//	sessionFile: /home/me/.uidam/session
//	callbackAddr: 127.0.0.1:8843
//	httpTimeout: 30s
type FileValues struct {
	BaseURL      string `yaml:"baseURL"`
	ClientID     string `yaml:"clientID"`
	Scopes       string `yaml:"scopes"`
	SessionFile  string `yaml:"sessionFile"`
	CallbackAddr string `yaml:"callbackAddr"`
	HTTPTimeout  string `yaml:"httpTimeout"`
}

func loadDefaultFile() *FileValues {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	fv, err := loadFile(filepath.Join(home, ".uidam", "config.yaml"))
	if err != nil {
		return nil
	}
	return fv
}

func loadFile(path string) (*FileValues, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[config.loadFile] read")
	}
	var fv FileValues
	if err := yaml.Unmarshal(data, &fv); err != nil {
		return nil, errors.Wrap(err, "[config.loadFile] unmarshal")
	}
	return &fv, nil
}

// Nil-safe accessors so EnvVars can hold a nil *FileValues when no
// config file exists.

func (f *FileValues) baseURL() string {
	if f == nil {
		return ""
	}
	return f.BaseURL
}

func (f *FileValues) clientID() string {
	if f == nil {
		return ""
	}
	return f.ClientID
}

func (f *FileValues) scopes() string {
	if f == nil {
		return ""
	}
	return f.Scopes
}

func (f *FileValues) sessionFile() string {
	if f == nil {
		return ""
	}
	return f.SessionFile
}

func (f *FileValues) callbackAddr() string {
	if f == nil {
		return ""
	}
	return f.CallbackAddr
}

func (f *FileValues) httpTimeout() string {
	if f == nil {
		return ""
	}
	return f.HTTPTimeout
}
