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

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/softclock/calendar"
	"github.com/facebook/softclock/provider/ntp"
)

var okString = color.GreenString("[ OK ]")
var failString = color.RedString("[FAIL]")

var queryTimeoutFlag time.Duration

func init() {
	RootCmd.AddCommand(queryCmd)
	queryCmd.Flags().DurationVarP(&queryTimeoutFlag, "timeout", "t", ntp.DefaultTimeout, "query timeout")
}

var queryCmd = &cobra.Command{
	Use:   "query <server>",
	Short: "Read the time once from an SNTP server the way the clock syncs to it",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()
		if err := queryRun(os.Stdout, &ntp.Provider{Server: args[0], Timeout: queryTimeoutFlag}); err != nil {
			os.Exit(1)
		}
	},
}

func queryRun(w io.Writer, p *ntp.Provider) error {
	resp, err := p.Query()
	if err != nil {
		fmt.Fprintf(w, "%s %v\n", failString, err)
		return err
	}
	t := ntp.Seconds(resp)
	fmt.Fprintf(w, "%s %s: stratum %d, rtt %v, offset %v\n", okString, p.Server, resp.Stratum, resp.RTT, resp.ClockOffset)
	fmt.Fprintf(w, "%d %s\n", t, calendar.Decompose(t))
	log.Debugf("reference time %v, root distance %v", resp.ReferenceTime, resp.RootDistance)
	return nil
}
