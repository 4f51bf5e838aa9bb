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
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebook/softclock/daemon"
	"github.com/facebook/softclock/stats"
)

var (
	runCfg     = daemon.DefaultConfig()
	runCfgPath string
)

func init() {
	RootCmd.AddCommand(runCmd)
	f := runCmd.Flags()
	f.StringVar(&runCfgPath, "cfg", "", "Path to config. Overrides all other flags")
	f.DurationVar(&runCfg.SyncInterval, "syncinterval", runCfg.SyncInterval, "how often the sync provider is polled")
	f.DurationVar(&runCfg.PollInterval, "pollinterval", runCfg.PollInterval, "how often the clock is advanced and published")
	f.DurationVar(&runCfg.ZoneOffset, "zone", runCfg.ZoneOffset, "standard offset east of UTC")
	f.DurationVar(&runCfg.DSTOffset, "dstoffset", runCfg.DSTOffset, "DST offset")
	f.BoolVar(&runCfg.DSTActive, "dst", runCfg.DSTActive, "apply the DST offset")
	f.StringVar(&runCfg.Format, "format", runCfg.Format, "render pattern for the log line")
	f.IntVar(&runCfg.MonitoringPort, "monitoringport", runCfg.MonitoringPort, "Port to run monitoring server on. 0 disables it")
	f.StringVar(&runCfg.Provider.Type, "provider", runCfg.Provider.Type, "sync provider: none, system, ntp or shm")
	f.StringSliceVar(&runCfg.Provider.Servers, "server", runCfg.Provider.Servers, "ntp server, may be repeated")
	f.DurationVar(&runCfg.Provider.Timeout, "timeout", runCfg.Provider.Timeout, "ntp query timeout")
	f.IntVar(&runCfg.Provider.SHMKey, "shmkey", runCfg.Provider.SHMKey, "ntp shm segment key")
	f.DurationVar(&runCfg.Provider.MaxAge, "shmmaxage", runCfg.Provider.MaxAge, "oldest ntp shm sample accepted")
	f.BoolVar(&runCfg.Responder.Enabled, "serve", runCfg.Responder.Enabled, "serve the clock over SNTP")
	f.StringVar(&runCfg.Responder.Address, "listen", runCfg.Responder.Address, "SNTP listen address")
	f.IntVar(&runCfg.Responder.Stratum, "stratum", runCfg.Responder.Stratum, "stratum to announce")
	f.StringVar(&runCfg.Responder.RefID, "refid", runCfg.Responder.RefID, "reference ID to announce")
	f.IntVar(&runCfg.Responder.DSCP, "dscp", runCfg.Responder.DSCP, "DSCP of SNTP responses")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the soft clock daemon",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		log.SetReportCaller(true)
		cfg := runCfg
		if runCfgPath != "" {
			log.Warningf("using config from %s, flag values are ignored", runCfgPath)
			var err error
			cfg, err = daemon.ReadConfig(runCfgPath)
			if err != nil {
				log.Fatal(err)
			}
		}
		if err := cfg.EvalAndValidate(); err != nil {
			log.Fatal(err)
		}
		log.Debugf("Config: %+v", *cfg)

		st := stats.NewStats()
		if cfg.MonitoringPort > 0 {
			go st.Start(cfg.MonitoringPort)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := daemon.New(cfg, st).Run(ctx); err != nil {
			log.Fatal(err)
		}
	},
}
