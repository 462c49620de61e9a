package config

import (
	"errors"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/duckity/go-duckity/pkg/client"
)

// Errors
var (
	ErrNoAppID       = errors.New("must specify an application ID via --app-id or the config file")
	ErrNoProfileCode = errors.New("must specify a profile code via --profile or the config file")
	ErrNoAppSecret   = errors.New("must specify an application secret via --app-secret or the config file (or pass --skip-validate)")
)

// Config holds the application configuration
type Config struct {
	Domain       string `yaml:"domain"`
	AppID        string `yaml:"app_id"`
	AppSecret    string `yaml:"app_secret"`
	ProfileCode  string `yaml:"profile"`
	Workers      int    `yaml:"workers"`
	Count        int    `yaml:"count"`
	Verbose      bool   `yaml:"verbose"`
	LogFile      string `yaml:"log_file"`
	SkipValidate bool   `yaml:"skip_validate"`
	ConfigFile   string `yaml:"-"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Domain:  client.DefaultDomain,
		Workers: runtime.NumCPU(),
		Count:   1,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.AppID == "" {
		return ErrNoAppID
	}
	if c.ProfileCode == "" {
		return ErrNoProfileCode
	}
	if !c.SkipValidate && c.AppSecret == "" {
		return ErrNoAppSecret
	}
	return nil
}

// LoadFile fills in configuration from a YAML file. Values already set
// on the config (e.g. from flags) take precedence over file values.
func (c *Config) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fromFile := Config{}
	if err := yaml.Unmarshal(content, &fromFile); err != nil {
		return err
	}

	if c.AppID == "" {
		c.AppID = fromFile.AppID
	}
	if c.AppSecret == "" {
		c.AppSecret = fromFile.AppSecret
	}
	if c.ProfileCode == "" {
		c.ProfileCode = fromFile.ProfileCode
	}
	if c.Domain == client.DefaultDomain && fromFile.Domain != "" {
		c.Domain = fromFile.Domain
	}
	if fromFile.Workers > 0 && c.Workers == runtime.NumCPU() {
		c.Workers = fromFile.Workers
	}
	if fromFile.Count > 0 && c.Count == 1 {
		c.Count = fromFile.Count
	}
	if fromFile.Verbose {
		c.Verbose = true
	}
	if c.LogFile == "" {
		c.LogFile = fromFile.LogFile
	}
	if fromFile.SkipValidate {
		c.SkipValidate = true
	}
	return nil
}
