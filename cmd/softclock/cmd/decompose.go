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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/clock"
)

func init() {
	RootCmd.AddCommand(decomposeCmd)
}

var decomposeCmd = &cobra.Command{
	Use:   "decompose <timestamp>",
	Short: "Print calendar fields of a timestamp",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()
		t, err := parseTimestamp(args[0])
		if err != nil {
			log.Fatal(err)
		}
		decomposeRun(os.Stdout, t)
	},
}

func ampm(e *clock.Engine, t calendar.Time) string {
	if e.IsAMAt(t) {
		return "AM"
	}
	return "PM"
}

func decomposeRun(w io.Writer, t calendar.Time) {
	// the engine memoises the decomposition across the accessors below
	e := clock.New(clock.TickFunc(func() uint32 { return 0 }), nil)
	f := e.FieldsAt(t)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"field", "value"})
	rows := [][]string{
		{"timestamp", fmt.Sprintf("%d", t)},
		{"date", f.String()},
		{"year", fmt.Sprintf("%d", e.YearAt(t))},
		{"month", fmt.Sprintf("%d (%s)", e.MonthAt(t), calendar.MonthName(f.Month))},
		{"day", fmt.Sprintf("%d", e.DayAt(t))},
		{"weekday", fmt.Sprintf("%d (%s)", e.WeekdayAt(t), calendar.DayName(f.Weekday))},
		{"hour", fmt.Sprintf("%d (%d %s)", e.HourAt(t), e.HourFormat12At(t), ampm(e, t))},
		{"minute", fmt.Sprintf("%d", e.MinuteAt(t))},
		{"second", fmt.Sprintf("%d", e.SecondAt(t))},
		{"leap year", fmt.Sprintf("%v", calendar.IsLeapYear(f.Year))},
		{"days in month", fmt.Sprintf("%d", calendar.DaysInMonth(f.Year, f.Month))},
		{"elapsed days", fmt.Sprintf("%d", calendar.ElapsedDays(t))},
		{"previous midnight", fmt.Sprintf("%d", calendar.PreviousMidnight(t))},
		{"next sunday", fmt.Sprintf("%d", calendar.NextSunday(t))},
	}
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
}
