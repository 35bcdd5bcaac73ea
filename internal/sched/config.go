package sched

import (
	"os"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	PIDStart      PID           `yaml:"pid_start"`      // 1 (by default)
	OverrunPolicy OverrunPolicy `yaml:"overrun_policy"` // reject (by default) | clamp | allow
	LogLevel      string        `yaml:"log_level"`      // info (by default)
	CSVTrace      string        `yaml:"csv_trace"`      // empty disables the CSV event trace
}

// OverrunPolicy decides what happens when remaining burst is decremented at or below zero.
type OverrunPolicy int

const (
	// OverrunReject leaves remaining burst untouched and returns ErrInvalidState.
	OverrunReject OverrunPolicy = iota
	// OverrunClamp keeps remaining burst at zero without error.
	OverrunClamp
	// OverrunAllow lets remaining burst go negative.
	OverrunAllow
)

func (o OverrunPolicy) String() string {
	switch o {
	case OverrunReject:
		return "reject"
	case OverrunClamp:
		return "clamp"
	case OverrunAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// UnmarshalYAML parses the policy name; unknown names fall back to OverrunReject.
func (o *OverrunPolicy) UnmarshalYAML(data []byte) error {
	var name string
	if err := yaml.Unmarshal(data, &name); err != nil {
		return err
	}
	*o, _ = ParseOverrunPolicy(name)
	return nil
}

// MarshalYAML renders the policy name.
func (o OverrunPolicy) MarshalYAML() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOverrunPolicy maps a config value onto an OverrunPolicy.
func ParseOverrunPolicy(s string) (OverrunPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return OverrunReject, true
	case "clamp":
		return OverrunClamp, true
	case "allow":
		return OverrunAllow, true
	default:
		return OverrunReject, false
	}
}

// If the config file is not found, we use default values
func DefaultConfig() Config {
	return Config{
		PIDStart:      1,
		OverrunPolicy: OverrunReject,
		LogLevel:      "info",
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only
func Load(path string) Config {
	cfg := DefaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.PIDStart < 1 {
		cfg.PIDStart = 1
	}
	if cfg.OverrunPolicy < OverrunReject || cfg.OverrunPolicy > OverrunAllow {
		cfg.OverrunPolicy = OverrunReject
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg
}
