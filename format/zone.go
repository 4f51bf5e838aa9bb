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

package format

import (
	"fmt"
	"math"

	"github.com/facebook/softclock/calendar"
)

// Offset bounds accepted by SetOffset
const (
	MinOffset int32 = -12 * 3600
	MaxOffset int32 = 14 * 3600
)

// DefaultDSTOffset is the DST offset stored until configured otherwise
const DefaultDSTOffset int32 = 3600

// Zone holds the standard offset and the DST offset, in seconds east of UTC.
// The DST offset is applied only while DST is active.
type Zone struct {
	Offset    int32
	DSTOffset int32
	DSTActive bool
}

// NewZone returns UTC with the default DST offset stored but inactive
func NewZone() Zone {
	return Zone{DSTOffset: DefaultDSTOffset}
}

// SetOffset sets the standard offset
func (z *Zone) SetOffset(offset int32) error {
	if offset < MinOffset || offset > MaxOffset {
		return fmt.Errorf("zone offset %ds is outside of [%d, %d]", offset, MinOffset, MaxOffset)
	}
	z.Offset = offset
	return nil
}

// BeginDST starts applying the DST offset
func (z *Zone) BeginDST() { z.DSTActive = true }

// EndDST stops applying the DST offset
func (z *Zone) EndDST() { z.DSTActive = false }

// IsDST reports whether the DST offset is applied
func (z Zone) IsDST() bool { return z.DSTActive }

// Combined returns the offset currently applied
func (z Zone) Combined() int32 {
	if z.DSTActive {
		return z.Offset + z.DSTOffset
	}
	return z.Offset
}

// Local shifts t by the combined offset. The result saturates at the
// ends of the calendar.Time range instead of wrapping, so a western zone
// renders the first hours of 1970 as the epoch.
func (z Zone) Local(t calendar.Time) calendar.Time {
	v := int64(t) + int64(z.Combined())
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return calendar.Time(v)
}

// ZoneString renders an offset as ±HH:MM, or Z for UTC
func ZoneString(offset int32) string {
	if offset == 0 {
		return "Z"
	}
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/3600, offset/60%60)
}
