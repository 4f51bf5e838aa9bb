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

package clock

//go:generate mockgen -source interfaces.go -destination mock_interfaces.go -package clock

import (
	"time"

	"github.com/facebook/softclock/calendar"
)

// TickSource is a free running millisecond counter which wraps at 2^32
type TickSource interface {
	Millis() uint32
}

// TickFunc adapts a function to TickSource
type TickFunc func() uint32

// Millis calls f
func (f TickFunc) Millis() uint32 {
	return f()
}

// MonotonicTicks counts milliseconds since its creation using the runtime monotonic clock
type MonotonicTicks struct {
	start time.Time
}

// NewMonotonicTicks returns a tick source starting at 0
func NewMonotonicTicks() *MonotonicTicks {
	return &MonotonicTicks{start: time.Now()}
}

// Millis returns milliseconds since creation, truncated to 32 bits
func (m *MonotonicTicks) Millis() uint32 {
	return uint32(time.Since(m.start).Milliseconds())
}

// SyncProvider reads time from an external authority.
// It returns 0 when no reading is available. It must not block indefinitely.
type SyncProvider interface {
	ReadTime() calendar.Time
}

// SyncProviderFunc adapts a function to SyncProvider
type SyncProviderFunc func() calendar.Time

// ReadTime calls f. A nil function never has a reading.
func (f SyncProviderFunc) ReadTime() calendar.Time {
	if f == nil {
		return 0
	}
	return f()
}

// StatsServer is a stats server interface
type StatsServer interface {
	SetCounter(key string, val int64)
	UpdateCounterBy(key string, count int64)
	// ObserveCorrection records by how many seconds a set moved an already trusted clock
	ObserveCorrection(seconds int64)
}

// Counters reported to StatsServer
const (
	CounterSyncAttempts  = "clock.sync.attempts"
	CounterSyncSuccesses = "clock.sync.successes"
	CounterSyncFailures  = "clock.sync.failures"
	CounterStatus        = "clock.status"
)

type noopStats struct{}

func (noopStats) SetCounter(string, int64)      {}
func (noopStats) UpdateCounterBy(string, int64) {}
func (noopStats) ObserveCorrection(int64)       {}
