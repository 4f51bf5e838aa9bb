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

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// MonthName returns the English name of month 1-12, or "" if out of range
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// MonthShortName returns the three letter abbreviation of month 1-12
func MonthShortName(month int) string {
	return shorten(MonthName(month))
}

// DayName returns the English name of weekday 1-7 (Sunday is 1), or "" if out of range
func DayName(weekday int) string {
	if weekday < 1 || weekday > 7 {
		return ""
	}
	return dayNames[weekday-1]
}

// DayShortName returns the three letter abbreviation of weekday 1-7
func DayShortName(weekday int) string {
	return shorten(DayName(weekday))
}

func shorten(name string) string {
	if len(name) < 3 {
		return name
	}
	return name[:3]
}
