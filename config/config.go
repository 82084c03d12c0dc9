// Package config merges command line flags, CSAK_* environment variables and
// an optional YAML file into the settings of a scan.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "CSAK"

const (
	KeyHost        = "host"
	KeyStart       = "start"
	KeyEnd         = "end"
	KeyConcurrency = "concurrency"
	KeyTimeoutMS   = "timeout-ms"
	KeyOut         = "out"
	KeyNoProgress  = "no-progress"
)

// ScanConfig is everything a scan command needs, after layering.
type ScanConfig struct {
	Host        string
	Start       int
	End         int
	Concurrency int
	Timeout     time.Duration
	Out         string
	NoProgress  bool
}

// Load reads the scan settings. Precedence, highest first: flags set on the
// command line, environment, the config file at path (if any), flag defaults.
func Load(flags *pflag.FlagSet, path string) (*ScanConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &ScanConfig{
		Host:        strings.TrimSpace(v.GetString(KeyHost)),
		Start:       v.GetInt(KeyStart),
		End:         v.GetInt(KeyEnd),
		Concurrency: v.GetInt(KeyConcurrency),
		Timeout:     time.Duration(v.GetInt(KeyTimeoutMS)) * time.Millisecond,
		Out:         v.GetString(KeyOut),
		NoProgress:  v.GetBool(KeyNoProgress),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ScanConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("a target host is required (--%s)", KeyHost)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("--%s must be at least 1, got %d", KeyConcurrency, c.Concurrency)
	}
	if c.Timeout < time.Millisecond {
		return fmt.Errorf("--%s must be at least 1", KeyTimeoutMS)
	}
	return nil
}
