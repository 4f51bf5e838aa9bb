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

// API counts months from 1, this table from 0
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether the year at offset y from EpochYear is a leap year.
// The century rules are applied to the absolute year.
func IsLeapYear(y int) bool {
	year := YearFromOffset(y)
	return year > 0 && year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInYear(y int) uint32 {
	if IsLeapYear(y) {
		return 366
	}
	return 365
}

// DaysInMonth returns the length of month (1-12) in the year at offset y
func DaysInMonth(y, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(y) {
		return 29
	}
	return monthDays[month-1]
}

// Decompose breaks t into calendar fields
func Decompose(t Time) Fields {
	var f Fields
	v := uint32(t)
	f.Second = int(v % 60)
	v /= 60 // minutes
	f.Minute = int(v % 60)
	v /= 60 // hours
	f.Hour = int(v % 24)
	v /= 24 // days
	f.Weekday = int((v+4)%7) + 1

	year := 0
	var days uint32
	for days+daysInYear(year) <= v {
		days += daysInYear(year)
		year++
	}
	f.Year = year
	v -= days // day of the year, from 0

	month := 1
	for ; month < 12; month++ {
		n := uint32(DaysInMonth(year, month))
		if v < n {
			break
		}
		v -= n
	}
	f.Month = month
	f.Day = int(v) + 1
	return f
}

// Compose assembles calendar fields into a Time. Weekday is ignored.
// Components are not validated: out of range values produce a well defined
// but meaningless result.
func Compose(f Fields) Time {
	secs := int64(f.Year) * int64(SecsPerDay) * 365
	for y := 0; y < f.Year; y++ {
		if IsLeapYear(y) {
			secs += int64(SecsPerDay)
		}
	}
	for m := 1; m < f.Month && m <= 12; m++ {
		secs += int64(DaysInMonth(f.Year, m)) * int64(SecsPerDay)
	}
	secs += int64(f.Day-1) * int64(SecsPerDay)
	secs += int64(f.Hour) * int64(SecsPerHour)
	secs += int64(f.Minute) * int64(SecsPerMin)
	secs += int64(f.Second)
	return Time(uint32(secs))
}
