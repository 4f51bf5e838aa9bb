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
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/clock"
)

func init() {
	RootCmd.AddCommand(composeCmd)
}

var composeCmd = &cobra.Command{
	Use:   "compose <year> <month> <day> [hour minute second]",
	Short: "Print the timestamp of a calendar date. Years up to 99 count from 2000",
	Args:  cobra.RangeArgs(3, 6),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()
		if err := composeRun(os.Stdout, args); err != nil {
			log.Fatal(err)
		}
	},
}

func composeTime(args []string) (calendar.Time, error) {
	// year, month, day, hour, minute, second
	v := make([]int, 6)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid value %q", arg)
		}
		v[i] = n
	}
	if v[1] < 1 || v[1] > 12 {
		return 0, fmt.Errorf("month %d is out of range", v[1])
	}
	e := clock.New(clock.TickFunc(func() uint32 { return 0 }), nil)
	e.SetComponents(v[3], v[4], v[5], v[2], v[1], v[0])
	return e.Now(), nil
}

func composeRun(w io.Writer, args []string) error {
	t, err := composeTime(args)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, t)
	return nil
}
