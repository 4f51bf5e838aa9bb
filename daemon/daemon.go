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

/*
Package daemon hosts a soft clock: it owns one clock engine, wires the
configured sync provider, advances the clock periodically, publishes its
state as counters and optionally serves it over SNTP.
*/
package daemon

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/clock"
	"github.com/facebook/softclock/format"
	"github.com/facebook/softclock/provider"
	"github.com/facebook/softclock/provider/ntp"
	"github.com/facebook/softclock/provider/shm"
	"github.com/facebook/softclock/responder"
	"github.com/facebook/softclock/stats"
)

// Counters published by the poll loop
const (
	CounterSeconds = "clock.seconds"
	CounterDrift   = "clock.drift"
)

// sysStatsInterval is how often process stats are collected
const sysStatsInterval = time.Minute

// Daemon is the host of a soft clock. All methods are safe for concurrent use.
type Daemon struct {
	cfg   *Config
	stats clock.StatsServer

	mu        sync.Mutex
	engine    *clock.Engine
	presenter *format.Presenter
}

// NewProvider builds the sync provider described by cfg. It returns nil for ProviderNone.
func NewProvider(cfg ProviderConfig) clock.SyncProvider {
	switch cfg.Type {
	case ProviderSystem:
		return &provider.System{}
	case ProviderSHM:
		return &shm.Provider{Key: cfg.SHMKey, MaxAge: cfg.MaxAge}
	case ProviderNTP:
		if len(cfg.Servers) == 1 {
			return &ntp.Provider{Server: cfg.Servers[0], Timeout: cfg.Timeout}
		}
		chain := provider.Chain{}
		for _, server := range cfg.Servers {
			chain = append(chain, &ntp.Provider{Server: server, Timeout: cfg.Timeout})
		}
		return chain
	}
	return nil
}

// New creates a Daemon using the monotonic clock and the provider from cfg. st may be nil.
func New(cfg *Config, st clock.StatsServer) *Daemon {
	return newDaemon(cfg, st, clock.NewMonotonicTicks(), NewProvider(cfg.Provider))
}

func newDaemon(cfg *Config, st clock.StatsServer, ticks clock.TickSource, p clock.SyncProvider) *Daemon {
	if st == nil {
		st = stats.NewStats()
	}
	d := &Daemon{
		cfg:       cfg,
		stats:     st,
		engine:    clock.New(ticks, st),
		presenter: format.NewPresenter(),
	}
	d.presenter.Zone = cfg.Zone()
	d.presenter.Pattern = cfg.Format
	d.engine.SetSyncInterval(calendar.Time(cfg.SyncInterval / time.Second))
	if p != nil {
		// polls right away
		d.engine.SetSyncProvider(p)
	}
	return d
}

// Now returns the current clock reading
func (d *Daemon) Now() calendar.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.Now()
}

// TimeStatus returns the trust status of the clock
func (d *Daemon) TimeStatus() clock.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.TimeStatus()
}

// Fields returns the current UTC calendar fields
func (d *Daemon) Fields() calendar.Fields {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engine.Fields()
}

// SetTime sets the clock manually
func (d *Daemon) SetTime(t calendar.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine.SetTime(t)
}

// Adjust moves the clock by delta seconds
func (d *Daemon) Adjust(delta int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine.Adjust(delta)
}

// Render returns the current local time in the default format
func (d *Daemon) Render() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.presenter.Default(d.engine.Now())
}

// Format returns the current local time rendered with pattern.
// An empty pattern uses the configured one.
func (d *Daemon) Format(pattern string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.presenter.Format(d.engine.Now(), pattern)
}

// SetDST starts or stops applying the DST offset
func (d *Daemon) SetDST(active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if active {
		d.presenter.Zone.BeginDST()
	} else {
		d.presenter.Zone.EndDST()
	}
}

// publish advances the clock and reports its state
func (d *Daemon) publish() {
	d.mu.Lock()
	now := d.engine.Now()
	status := d.engine.TimeStatus()
	unsynced := d.engine.UnsyncedTime()
	rendered := d.presenter.Format(now, "")
	d.mu.Unlock()

	log.Debugf("%s %s", rendered, status)

	d.stats.SetCounter(CounterSeconds, int64(now))
	d.stats.SetCounter(clock.CounterStatus, int64(status))
	if status != clock.StatusNotSet {
		// signed distance between the synced and the free running clock
		d.stats.SetCounter(CounterDrift, int64(int32(uint32(now)-uint32(unsynced))))
	}
}

func (d *Daemon) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()
	d.publish()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.publish()
		}
	}
}

func (d *Daemon) sysStatsLoop(ctx context.Context, st stats.CounterSetter) {
	s, err := stats.NewSampler()
	if err != nil {
		log.Warningf("process stats disabled: %v", err)
		return
	}
	ticker := time.NewTicker(sysStatsInterval)
	defer ticker.Stop()
	for {
		s.Publish(st)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Run advances and publishes the clock, and serves it when the responder is
// enabled, until ctx is done
func (d *Daemon) Run(ctx context.Context) error {
	var srv *responder.Server
	if d.cfg.Responder.Enabled {
		srv = responder.New(d.cfg.Responder.Config, d, d.stats)
		if err := srv.Listen(); err != nil {
			return err
		}
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		d.pollLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		d.sysStatsLoop(ctx, d.stats)
		return nil
	})
	if srv != nil {
		eg.Go(func() error {
			return srv.Serve(ctx)
		})
	}
	log.Infof("soft clock running, status %s, time %s", d.TimeStatus(), d.Render())
	return eg.Wait()
}
