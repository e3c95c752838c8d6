package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file looked up when no path is given.
const DefaultPath = "huectl.yaml"

// DefaultDiscoveryURL is the public endpoint listing bridges on the caller's network.
const DefaultDiscoveryURL = "https://discovery.meethue.com/"

// Config represents the settings of the tool itself. It is never written by huectl;
// the bridge credentials live in the state file managed by the store package.
type Config struct {
	StateFile       string          `yaml:"state_file"`
	ApplicationName string          `yaml:"application_name"`
	Log             LogConfig       `yaml:"log"`
	Bridge          BridgeConfig    `yaml:"bridge"`
	Discovery       DiscoveryConfig `yaml:"discovery"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Colors bool   `yaml:"colors"`
	JSON   bool   `yaml:"json"`
}

// BridgeConfig contains HTTP settings for talking to the bridge
type BridgeConfig struct {
	Timeout      Duration `yaml:"timeout"`        // 0 = no timeout
	RateLimitRPS float64  `yaml:"rate_limit_rps"` // requests per second towards the bridge
}

// DiscoveryConfig contains bridge discovery settings
type DiscoveryConfig struct {
	URL string `yaml:"url"`
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the settings used when no file is present.
func Default() *Config {
	cfg := &Config{Log: LogConfig{Colors: true}}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses the settings file.
// When path is the default path and the file does not exist, defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	cfg := Config{Log: LogConfig{Colors: true}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.StateFile == "" {
		cfg.StateFile = "config.json"
	}
	if cfg.ApplicationName == "" {
		cfg.ApplicationName = "hue-cli"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	// Bridge.Timeout stays 0: the http.Client default applies.
	if cfg.Bridge.RateLimitRPS == 0 {
		cfg.Bridge.RateLimitRPS = 10.0
	}
	if cfg.Discovery.URL == "" {
		cfg.Discovery.URL = DefaultDiscoveryURL
	}
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
