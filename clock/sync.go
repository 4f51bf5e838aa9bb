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

import (
	log "github.com/sirupsen/logrus"

	"github.com/facebook/softclock/calendar"
)

// SetSyncProvider registers p (nil unregisters it) and polls it right away
func (e *Engine) SetSyncProvider(p SyncProvider) {
	e.provider = p
	e.nextSync = e.current
	e.Now()
}

// SetSyncInterval sets the number of seconds between provider polls.
// The next poll is due one interval from now; no poll is forced.
func (e *Engine) SetSyncInterval(interval calendar.Time) {
	e.syncInterval = interval
	e.nextSync = e.current + interval
}

// SyncInterval returns the number of seconds between provider polls
func (e *Engine) SyncInterval() calendar.Time {
	return e.syncInterval
}

// TimeStatus advances the clock, which may poll the provider, and returns the trust status
func (e *Engine) TimeStatus() Status {
	e.Now()
	return e.status
}

func (e *Engine) maybeResync() {
	if e.current < e.nextSync || e.provider == nil {
		return
	}
	e.stats.UpdateCounterBy(CounterSyncAttempts, 1)
	if t := e.provider.ReadTime(); t != 0 {
		e.stats.UpdateCounterBy(CounterSyncSuccesses, 1)
		log.Debugf("clock: synced to %d, was %d", t, e.current)
		e.SetTime(t)
		return
	}
	e.stats.UpdateCounterBy(CounterSyncFailures, 1)
	e.nextSync = e.current + e.syncInterval
	// a clock that was never set stays unset until its first successful set
	if e.status != StatusNotSet {
		e.setStatus(StatusNeedsSync)
	}
}

func (e *Engine) setStatus(s Status) {
	if s == e.status {
		return
	}
	if s == StatusNeedsSync {
		log.Warningf("clock: sync provider has no reading, status %s -> %s", e.status, s)
	} else {
		log.Debugf("clock: status %s -> %s", e.status, s)
	}
	e.status = s
	e.stats.SetCounter(CounterStatus, int64(s))
}
