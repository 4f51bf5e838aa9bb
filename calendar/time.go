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

package calendar

import (
	"fmt"
	"time"
)

// Time is the number of seconds elapsed since 1970-01-01T00:00:00Z.
// Arithmetic on it wraps at 2^32.
type Time uint32

// EpochYear is the calendar year Fields.Year is counted from
const EpochYear = 1970

// Useful constants
const (
	SecsPerMin   Time = 60
	SecsPerHour  Time = 3600
	SecsPerDay   Time = SecsPerHour * 24
	DaysPerWeek  Time = 7
	SecsPerWeek  Time = SecsPerDay * DaysPerWeek
	SecsPerYear  Time = SecsPerDay * 365 // non-leap year
	SecsYear2000 Time = 946684800        // 2000-01-01T00:00:00Z
)

// Fields is a time broken down into calendar components
type Fields struct {
	Second  int // 0-59
	Minute  int // 0-59
	Hour    int // 0-23
	Weekday int // 1-7, Sunday is 1
	Day     int // 1-31
	Month   int // 1-12, January is 1
	Year    int // offset from EpochYear
}

// FullYear returns the four digit year
func (f Fields) FullYear() int {
	return YearFromOffset(f.Year)
}

// String renders fields as YYYY-MM-DD HH:MM:SS
func (f Fields) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", f.FullYear(), f.Month, f.Day, f.Hour, f.Minute, f.Second)
}

// YearFromOffset converts a year offset to a full four digit year
func YearFromOffset(y int) int { return y + EpochYear }

// OffsetFromYear converts a full four digit year to an offset from EpochYear
func OffsetFromYear(y int) int { return y - EpochYear }

// OffsetFromY2KYear converts years since 2000 to an offset from EpochYear
func OffsetFromY2KYear(y int) int { return y + 30 }

// Y2KYearFromOffset converts an offset from EpochYear to years since 2000
func Y2KYearFromOffset(y int) int { return y - 30 }

// FromTime converts t to Time. Instants outside of the representable range map to 0.
func FromTime(t time.Time) Time {
	s := t.Unix()
	if s < 0 || s > int64(^uint32(0)) {
		return 0
	}
	return Time(s)
}

// Std returns t as a UTC time.Time
func (t Time) Std() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Add returns t shifted by delta seconds, wrapping like the underlying integer
func (t Time) Add(delta int64) Time {
	return Time(uint32(int64(t) + delta))
}
