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
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/format"
)

var (
	formatZoneFlag      time.Duration
	formatDSTFlag       bool
	formatDSTOffsetFlag time.Duration
)

func init() {
	RootCmd.AddCommand(formatCmd)
	formatCmd.Flags().DurationVarP(&formatZoneFlag, "zone", "z", 0, "standard offset east of UTC, e.g. 5h30m or -8h")
	formatCmd.Flags().BoolVar(&formatDSTFlag, "dst", false, "apply the DST offset")
	formatCmd.Flags().DurationVar(&formatDSTOffsetFlag, "dstoffset", time.Duration(format.DefaultDSTOffset)*time.Second, "DST offset")
}

var formatCmd = &cobra.Command{
	Use:   "format <timestamp> [pattern]",
	Short: "Render a timestamp. Pattern is strftime-like, %z is the zone offset. Default is asctime",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()
		t, err := parseTimestamp(args[0])
		if err != nil {
			log.Fatal(err)
		}
		pattern := format.FormatDefault
		if len(args) > 1 {
			pattern = args[1]
		}
		if err := formatRun(os.Stdout, t, pattern, formatZoneFlag, formatDSTOffsetFlag, formatDSTFlag); err != nil {
			log.Fatal(err)
		}
	},
}

func formatRun(w io.Writer, t calendar.Time, pattern string, zone, dstOffset time.Duration, dst bool) error {
	p := format.NewPresenter()
	if err := p.Zone.SetOffset(int32(zone / time.Second)); err != nil {
		return err
	}
	p.Zone.DSTOffset = int32(dstOffset / time.Second)
	if dst {
		p.Zone.BeginDST()
	}
	log.Debugf("zone %s, dst %v", format.ZoneString(p.Zone.Combined()), p.Zone.IsDST())
	fmt.Fprintln(w, p.Format(t, pattern))
	return nil
}
