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
Package provider contains sync providers for the soft clock.

A sync provider returns the current time in whole seconds since 1970, or 0
when it has no reading. Network and shared memory providers live in the
ntp and shm subpackages.
*/
package provider

import (
	"time"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/clock"
)

// System reads the host wall clock
type System struct {
	// Now overrides time.Now, used in tests
	Now func() time.Time
}

// ReadTime returns the host time, or 0 if it is outside of the representable range
func (s *System) ReadTime() calendar.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return calendar.FromTime(now())
}

// Chain polls providers in order and returns the first reading
type Chain []clock.SyncProvider

// ReadTime returns the first non-zero reading, or 0 when no provider has one
func (c Chain) ReadTime() calendar.Time {
	for _, p := range c {
		if p == nil {
			continue
		}
		if t := p.ReadTime(); t != 0 {
			return t
		}
	}
	return 0
}
