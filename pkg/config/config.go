// Package config loads the coordinator's YAML configuration file,
// the thin adapter layer the binary's main reads before wiring up the core.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yuan-yuan-jia/lightflus/pkg/storage"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

// CoordinatorConfig is the coordinator binary's full startup configuration:
// the core's {port, cluster, storage} plus the ambient fields the
// distribution adds (YAML keys logLevel, logJson, probeInterval,
// heartbeatTimeout).
type CoordinatorConfig struct {
	Port    int               `yaml:"port"`
	Cluster []types.NodeConfig `yaml:"cluster"`
	Storage storage.Config    `yaml:"storage"`

	LogLevel         string `yaml:"logLevel"`
	LogJSON          bool   `yaml:"logJson"`
	ProbeInterval    Duration `yaml:"probeInterval"`
	HeartbeatTimeout Duration `yaml:"heartbeatTimeout"`
}

// Duration wraps time.Duration with YAML unmarshaling from Go duration
// strings ("5s", "250ms"), since yaml.v3 has no built-in support for it.
type Duration time.Duration

// AsTimeDuration returns d as a standard time.Duration.
func (d Duration) AsTimeDuration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// defaults applied to fields a config file leaves zero.
const (
	defaultPort             = 7070
	defaultProbeInterval    = 5 * time.Second
	defaultHeartbeatTimeout = 15 * time.Second
	defaultLogLevel         = "info"
)

// Load reads and parses a CoordinatorConfig from path, filling in defaults
// for any ambient field the file omits.
func Load(path string) (*CoordinatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg CoordinatorConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.ProbeInterval == 0 {
		cfg.ProbeInterval = Duration(defaultProbeInterval)
	}
	if cfg.HeartbeatTimeout == 0 {
		cfg.HeartbeatTimeout = Duration(defaultHeartbeatTimeout)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Storage.Persist == nil && cfg.Storage.Memory == nil {
		cfg.Storage.Memory = &struct{}{}
	}

	return &cfg, nil
}
