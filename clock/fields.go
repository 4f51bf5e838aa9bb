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

// replaced in tests to count decompositions
var decompose = calendar.Decompose

// FieldsAt returns the calendar fields of t.
// Repeated queries for the same t reuse the previous decomposition.
func (e *Engine) FieldsAt(t calendar.Time) calendar.Fields {
	if !e.cacheValid || t != e.cacheKey {
		e.cacheFields = decompose(t)
		e.cacheKey = t
		e.cacheValid = true
	}
	return e.cacheFields
}

// Fields returns the calendar fields of the current time
func (e *Engine) Fields() calendar.Fields { return e.FieldsAt(e.Now()) }

// Hour returns the current hour (0-23)
func (e *Engine) Hour() int { return e.HourAt(e.Now()) }

// HourAt returns the hour of t (0-23)
func (e *Engine) HourAt(t calendar.Time) int { return e.FieldsAt(t).Hour }

// HourFormat12 returns the current hour on a 12 hour dial (1-12)
func (e *Engine) HourFormat12() int { return e.HourFormat12At(e.Now()) }

// HourFormat12At returns the hour of t on a 12 hour dial (1-12)
func (e *Engine) HourFormat12At(t calendar.Time) int {
	h := e.HourAt(t)
	switch {
	case h == 0:
		return 12 // midnight
	case h > 12:
		return h - 12
	default:
		return h
	}
}

// IsAM reports whether the current time is before noon
func (e *Engine) IsAM() bool { return e.IsAMAt(e.Now()) }

// IsAMAt reports whether t is before noon
func (e *Engine) IsAMAt(t calendar.Time) bool { return !e.IsPMAt(t) }

// IsPM reports whether the current time is noon or later
func (e *Engine) IsPM() bool { return e.IsPMAt(e.Now()) }

// IsPMAt reports whether t is noon or later
func (e *Engine) IsPMAt(t calendar.Time) bool { return e.HourAt(t) >= 12 }

// Minute returns the current minute (0-59)
func (e *Engine) Minute() int { return e.MinuteAt(e.Now()) }

// MinuteAt returns the minute of t (0-59)
func (e *Engine) MinuteAt(t calendar.Time) int { return e.FieldsAt(t).Minute }

// Second returns the current second (0-59)
func (e *Engine) Second() int { return e.SecondAt(e.Now()) }

// SecondAt returns the second of t (0-59)
func (e *Engine) SecondAt(t calendar.Time) int { return e.FieldsAt(t).Second }

// Day returns the current day of the month (1-31)
func (e *Engine) Day() int { return e.DayAt(e.Now()) }

// DayAt returns the day of the month of t (1-31)
func (e *Engine) DayAt(t calendar.Time) int { return e.FieldsAt(t).Day }

// Weekday returns the current day of the week, Sunday is 1
func (e *Engine) Weekday() int { return e.WeekdayAt(e.Now()) }

// WeekdayAt returns the day of the week of t, Sunday is 1
func (e *Engine) WeekdayAt(t calendar.Time) int { return e.FieldsAt(t).Weekday }

// Month returns the current month, January is 1
func (e *Engine) Month() int { return e.MonthAt(e.Now()) }

// MonthAt returns the month of t, January is 1
func (e *Engine) MonthAt(t calendar.Time) int { return e.FieldsAt(t).Month }

// Year returns the current four digit year
func (e *Engine) Year() int { return e.YearAt(e.Now()) }

// YearAt returns the four digit year of t
func (e *Engine) YearAt(t calendar.Time) int { return e.FieldsAt(t).FullYear() }
