/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package daemon

import (
	"fmt"
	"math"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/facebook/softclock/format"
	"github.com/facebook/softclock/provider/shm"
	"github.com/facebook/softclock/responder"
)

// Sync provider types
const (
	ProviderNone   = "none"
	ProviderSystem = "system"
	ProviderNTP    = "ntp"
	ProviderSHM    = "shm"
)

// ProviderConfig selects the sync provider
type ProviderConfig struct {
	Type    string        `yaml:"type"`
	Servers []string      `yaml:"servers"` // ntp servers, polled in order
	Timeout time.Duration `yaml:"timeout"` // per ntp query
	SHMKey  int           `yaml:"shmkey"`
	MaxAge  time.Duration `yaml:"maxage"` // oldest shm sample accepted
}

// ResponderConfig enables serving the clock over SNTP
type ResponderConfig struct {
	Enabled          bool `yaml:"enabled"`
	responder.Config `yaml:",inline"`
}

// Config represents configuration we expect to read from file
type Config struct {
	SyncInterval   time.Duration   `yaml:"syncinterval"`   // how often the provider is polled
	PollInterval   time.Duration   `yaml:"pollinterval"`   // how often the clock is advanced and published
	ZoneOffset     time.Duration   `yaml:"zoneoffset"`     // standard offset east of UTC
	DSTOffset      time.Duration   `yaml:"dstoffset"`      // applied on top of ZoneOffset while DSTActive
	DSTActive      bool            `yaml:"dstactive"`      // whether DSTOffset is applied
	Format         string          `yaml:"format"`         // render pattern, "asctime" by default
	MonitoringPort int             `yaml:"monitoringport"` // 0 disables the http stats server
	Provider       ProviderConfig  `yaml:"provider"`
	Responder      ResponderConfig `yaml:"responder"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		SyncInterval:   5 * time.Minute,
		PollInterval:   time.Second,
		DSTOffset:      time.Duration(format.DefaultDSTOffset) * time.Second,
		Format:         format.FormatDefault,
		MonitoringPort: 4270,
		Provider: ProviderConfig{
			Type:    ProviderSystem,
			Timeout: 5 * time.Second,
			SHMKey:  shm.DefaultKey,
			MaxAge:  shm.DefaultMaxAge,
		},
		Responder: ResponderConfig{
			Config: responder.Config{
				Address: responder.DefaultAddress,
				Stratum: responder.DefaultStratum,
				RefID:   responder.DefaultRefID,
			},
		},
	}
}

func wholeSeconds(d time.Duration) bool {
	return d%time.Second == 0
}

// EvalAndValidate makes sure config is valid
func (c *Config) EvalAndValidate() error {
	if c.SyncInterval < time.Second || !wholeSeconds(c.SyncInterval) {
		return fmt.Errorf("bad config: 'syncinterval' must be a positive number of whole seconds")
	}
	if c.SyncInterval/time.Second > math.MaxUint32 {
		return fmt.Errorf("bad config: 'syncinterval' is too large")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("bad config: 'pollinterval' must be >0")
	}
	if c.PollInterval > time.Minute {
		return fmt.Errorf("bad config: 'pollinterval' is over a minute")
	}
	if !wholeSeconds(c.ZoneOffset) || !wholeSeconds(c.DSTOffset) {
		return fmt.Errorf("bad config: 'zoneoffset' and 'dstoffset' must be whole seconds")
	}
	z := format.NewZone()
	if err := z.SetOffset(int32(c.ZoneOffset / time.Second)); err != nil {
		return fmt.Errorf("bad config: 'zoneoffset': %w", err)
	}
	if c.DSTOffset < -2*time.Hour || c.DSTOffset > 2*time.Hour {
		return fmt.Errorf("bad config: 'dstoffset' must be within 2h")
	}
	if c.MonitoringPort < 0 || c.MonitoringPort > 65535 {
		return fmt.Errorf("bad config: 'monitoringport' must be between 0 and 65535")
	}
	switch c.Provider.Type {
	case ProviderNone, ProviderSystem:
	case ProviderSHM:
		if c.Provider.MaxAge <= 0 {
			return fmt.Errorf("bad config: 'provider.maxage' must be >0")
		}
	case ProviderNTP:
		if len(c.Provider.Servers) == 0 {
			return fmt.Errorf("bad config: 'provider.servers' must be specified for ntp")
		}
		if c.Provider.Timeout <= 0 {
			return fmt.Errorf("bad config: 'provider.timeout' must be >0")
		}
	default:
		return fmt.Errorf("bad config: unknown 'provider.type' %q", c.Provider.Type)
	}
	if c.Responder.Enabled {
		if err := c.Responder.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Zone returns the zone described by the config
func (c *Config) Zone() format.Zone {
	return format.Zone{
		Offset:    int32(c.ZoneOffset / time.Second),
		DSTOffset: int32(c.DSTOffset / time.Second),
		DSTActive: c.DSTActive,
	}
}

// ReadConfig reads config and unmarshals it from yaml on top of DefaultConfig
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}
