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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/facebook/softclock/format"
	"github.com/facebook/softclock/provider/shm"
	"github.com/facebook/softclock/responder"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "softclock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.EvalAndValidate())
	require.Equal(t, 5*time.Minute, c.SyncInterval)
	require.Equal(t, time.Second, c.PollInterval)
	require.Equal(t, format.FormatDefault, c.Format)
	require.Equal(t, ProviderSystem, c.Provider.Type)
	require.Equal(t, shm.DefaultKey, c.Provider.SHMKey)
	require.Equal(t, shm.DefaultMaxAge, c.Provider.MaxAge)
	require.False(t, c.Responder.Enabled)
	require.Equal(t, format.Zone{DSTOffset: 3600}, c.Zone())
}

func TestReadConfig(t *testing.T) {
	path := writeConfig(t, `
syncinterval: 1m
pollinterval: 500ms
zoneoffset: 5h30m
dstactive: true
format: "%Y-%m-%dT%H:%M:%S%z"
provider:
  type: ntp
  servers: [a.example.com, "b.example.com:1123"]
  timeout: 2s
responder:
  enabled: true
  address: "127.0.0.1:1123"
  stratum: 3
`)
	c, err := ReadConfig(path)
	require.NoError(t, err)
	require.NoError(t, c.EvalAndValidate())

	want := DefaultConfig()
	want.SyncInterval = time.Minute
	want.PollInterval = 500 * time.Millisecond
	want.ZoneOffset = 5*time.Hour + 30*time.Minute
	want.DSTActive = true
	want.Format = format.FormatISO8601Full
	want.Provider.Type = ProviderNTP
	want.Provider.Servers = []string{"a.example.com", "b.example.com:1123"}
	want.Provider.Timeout = 2 * time.Second
	want.Responder = ResponderConfig{
		Enabled: true,
		Config:  responder.Config{Address: "127.0.0.1:1123", Stratum: 3, RefID: responder.DefaultRefID},
	}
	require.Equal(t, want, c)
	require.Equal(t, format.Zone{Offset: 19800, DSTOffset: 3600, DSTActive: true}, c.Zone())
}

func TestReadConfigErrors(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadConfig(writeConfig(t, "syncintervall: 1m\n"))
	require.Error(t, err)

	_, err = ReadConfig(writeConfig(t, "syncinterval: soon\n"))
	require.Error(t, err)
}

func TestEvalAndValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(c *Config)
		err    string
	}{
		{"zero sync", func(c *Config) { c.SyncInterval = 0 }, "bad config: 'syncinterval' must be a positive number of whole seconds"},
		{"fractional sync", func(c *Config) { c.SyncInterval = 1500 * time.Millisecond }, "bad config: 'syncinterval' must be a positive number of whole seconds"},
		{"huge sync", func(c *Config) { c.SyncInterval = 1 << 32 * time.Second }, "bad config: 'syncinterval' is too large"},
		{"zero poll", func(c *Config) { c.PollInterval = 0 }, "bad config: 'pollinterval' must be >0"},
		{"slow poll", func(c *Config) { c.PollInterval = 2 * time.Minute }, "bad config: 'pollinterval' is over a minute"},
		{"fractional zone", func(c *Config) { c.ZoneOffset = time.Millisecond }, "bad config: 'zoneoffset' and 'dstoffset' must be whole seconds"},
		{"zone too far west", func(c *Config) { c.ZoneOffset = -13 * time.Hour }, "bad config: 'zoneoffset': zone offset -46800s is outside of [-43200, 50400]"},
		{"dst too large", func(c *Config) { c.DSTOffset = 3 * time.Hour }, "bad config: 'dstoffset' must be within 2h"},
		{"port", func(c *Config) { c.MonitoringPort = 70000 }, "bad config: 'monitoringport' must be between 0 and 65535"},
		{"provider", func(c *Config) { c.Provider.Type = "gps" }, `bad config: unknown 'provider.type' "gps"`},
		{"ntp servers", func(c *Config) { c.Provider.Type = ProviderNTP }, "bad config: 'provider.servers' must be specified for ntp"},
		{"ntp timeout", func(c *Config) {
			c.Provider.Type = ProviderNTP
			c.Provider.Servers = []string{"a"}
			c.Provider.Timeout = 0
		}, "bad config: 'provider.timeout' must be >0"},
		{"shm max age", func(c *Config) {
			c.Provider.Type = ProviderSHM
			c.Provider.MaxAge = 0
		}, "bad config: 'provider.maxage' must be >0"},
		{"responder", func(c *Config) {
			c.Responder.Enabled = true
			c.Responder.Stratum = 0
		}, "bad config: 'stratum' must be between 1 and 15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.modify(c)
			require.EqualError(t, c.EvalAndValidate(), tc.err)
		})
	}

	// a disabled responder is not validated
	c := DefaultConfig()
	c.Responder.Stratum = 0
	require.NoError(t, c.EvalAndValidate())
}
