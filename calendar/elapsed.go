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

// NumberOfSeconds returns the seconds past the minute
func NumberOfSeconds(t Time) Time { return t % SecsPerMin }

// NumberOfMinutes returns the minutes past the hour
func NumberOfMinutes(t Time) Time { return (t / SecsPerMin) % SecsPerMin }

// NumberOfHours returns the hours past midnight
func NumberOfHours(t Time) Time { return (t % SecsPerDay) / SecsPerHour }

// DayOfWeek returns the weekday of t, Sunday is 1
func DayOfWeek(t Time) Time { return ((t/SecsPerDay + 4) % DaysPerWeek) + 1 }

// ElapsedDays returns the number of days since 1970-01-01
func ElapsedDays(t Time) Time { return t / SecsPerDay }

// ElapsedSecsToday returns the number of seconds since the last midnight
func ElapsedSecsToday(t Time) Time { return t % SecsPerDay }

// PreviousMidnight returns the start of the day t falls in
func PreviousMidnight(t Time) Time { return (t / SecsPerDay) * SecsPerDay }

// NextMidnight returns the start of the day after t
func NextMidnight(t Time) Time { return PreviousMidnight(t) + SecsPerDay }

// ElapsedSecsThisWeek returns the number of seconds since the start of the week (Sunday midnight)
func ElapsedSecsThisWeek(t Time) Time {
	return ElapsedSecsToday(t) + (DayOfWeek(t)-1)*SecsPerDay
}

// PreviousSunday returns the start of the week t falls in.
// Meaningless for times before the first Sunday after the epoch.
func PreviousSunday(t Time) Time { return t - ElapsedSecsThisWeek(t) }

// NextSunday returns the start of the week after t
func NextSunday(t Time) Time { return PreviousSunday(t) + SecsPerWeek }

// MinutesToTime converts a number of minutes to seconds
func MinutesToTime(m uint32) Time { return Time(m) * SecsPerMin }

// HoursToTime converts a number of hours to seconds
func HoursToTime(h uint32) Time { return Time(h) * SecsPerHour }

// DaysToTime converts a number of days to seconds
func DaysToTime(d uint32) Time { return Time(d) * SecsPerDay }

// WeeksToTime converts a number of weeks to seconds
func WeeksToTime(w uint32) Time { return Time(w) * SecsPerWeek }
