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
	"github.com/facebook/softclock/calendar"
)

// DefaultSyncInterval is how many seconds pass between provider polls unless configured otherwise
const DefaultSyncInterval calendar.Time = 300

// Engine is a software clock. See package documentation for the model.
type Engine struct {
	ticks    TickSource
	provider SyncProvider
	stats    StatsServer

	current      calendar.Time
	unsynced     calendar.Time // driven by ticks only
	lastTick     uint32
	nextSync     calendar.Time
	syncInterval calendar.Time
	status       Status

	// last decomposition served by the accessors
	cacheKey    calendar.Time
	cacheFields calendar.Fields
	cacheValid  bool
}

// New returns an unset clock reading 0. stats may be nil.
func New(ticks TickSource, stats StatsServer) *Engine {
	if stats == nil {
		stats = noopStats{}
	}
	return &Engine{
		ticks:        ticks,
		stats:        stats,
		syncInterval: DefaultSyncInterval,
	}
}

// Advance folds the whole seconds elapsed between the previous tick mark and mark
// into the clock, keeping the sub-second remainder for later, then runs the
// resync check.
func (e *Engine) Advance(mark uint32) {
	// unsigned subtraction survives counter wraparound
	secs := (mark - e.lastTick) / 1000
	if secs > 0 {
		e.current += calendar.Time(secs)
		e.unsynced += calendar.Time(secs)
		e.lastTick += secs * 1000
	}
	e.maybeResync()
}

// Now advances the clock to the current tick reading and returns it
func (e *Engine) Now() calendar.Time {
	e.Advance(e.ticks.Millis())
	return e.current
}

// SetTime sets the clock to t and marks it trusted.
// Tick accounting restarts from the current tick reading.
func (e *Engine) SetTime(t calendar.Time) {
	if e.status == StatusNotSet {
		e.unsynced = t
	} else {
		e.stats.ObserveCorrection(int64(int32(uint32(t) - uint32(e.current))))
	}
	e.current = t
	e.nextSync = t + e.syncInterval
	e.lastTick = e.ticks.Millis()
	e.setStatus(StatusSet)
}

// SetComponents sets the clock from calendar components.
// year is either a full year (2010) or, when 99 or less, years since 2000 (10).
func (e *Engine) SetComponents(hour, minute, second, day, month, year int) {
	if year > 99 {
		year = calendar.OffsetFromYear(year)
	} else {
		year = calendar.OffsetFromY2KYear(year)
	}
	e.SetTime(calendar.Compose(calendar.Fields{
		Second: second,
		Minute: minute,
		Hour:   hour,
		Day:    day,
		Month:  month,
		Year:   year,
	}))
}

// Adjust moves the clock by delta seconds. Sync schedule and status are left alone.
func (e *Engine) Adjust(delta int64) {
	e.current = e.current.Add(delta)
}

// UnsyncedTime returns what the clock would read if it had only ever been
// driven by ticks since it was first set. Comparing it with Now shows long term drift.
func (e *Engine) UnsyncedTime() calendar.Time {
	return e.unsynced
}
