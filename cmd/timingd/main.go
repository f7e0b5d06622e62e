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

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/natefinch/lumberjack"
	"github.com/netclock/timingsrc/timing/daemon"
	"github.com/netclock/timingsrc/timing/stats"

	log "github.com/sirupsen/logrus"
)

func main() {
	var (
		cfg      = daemon.DefaultConfig()
		err      error
		cfgPath  string
		logLevel string
		logFile  string
	)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "timing source selection daemon\n\nFlags:\n")
		flag.PrintDefaults()
	}

	flag.StringVar(&cfg.BSPNetwork, "bspnetwork", cfg.BSPNetwork, "Network of the board support daemon socket, unix or tcp")
	flag.StringVar(&cfg.BSPAddress, "bspaddress", cfg.BSPAddress, "Address of the board support daemon socket")
	flag.DurationVar(&cfg.BSPTimeout, "bsptimeout", cfg.BSPTimeout, "Timeout of a single board support request")
	flag.BoolVar(&cfg.DryRun, "dryrun", false, "Only log the commands, don't touch the hardware")
	flag.StringVar(&cfg.RankingFile, "rankingfile", "", "Path to JSON ranking applied on start and on SIGHUP")
	flag.DurationVar(&cfg.Interval, "i", cfg.Interval, "Interval at which we poll DPLL status")
	flag.IntVar(&cfg.MonitoringPort, "monitoringport", cfg.MonitoringPort, "Port to run monitoring server on")
	flag.IntVar(&cfg.PrometheusPort, "prometheusport", 0, "Port to run prometheus exporter on. 0 means disabled")
	flag.StringVar(&cfg.PidFile, "pidfile", "", "Pid file location")

	flag.StringVar(&cfgPath, "cfg", "", "Path to config")
	flag.StringVar(&logLevel, "loglevel", "info", "Set a log level. Can be: trace, debug, info, warning, error")
	flag.StringVar(&logFile, "logfile", "", "Write logs into this file, rotating it. Empty means stderr")

	flag.Parse()

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatalf("Unrecognized log level: %v", logLevel)
	}
	log.SetLevel(level)
	if logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			Compress:   true,
		})
	}

	if cfgPath != "" {
		log.Warningf("using config from %s, flag values are ignored", cfgPath)
		cfg, err = daemon.ReadConfig(cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if err := cfg.EvalAndValidate(); err != nil {
		log.Fatal(err)
	}
	log.Debugf("Config: %+v", *cfg)

	st := stats.NewJSONStats()
	go st.Start(cfg.MonitoringPort)
	if cfg.PrometheusPort != 0 {
		exporter := stats.NewPrometheusExporter(st, cfg.PrometheusPort, cfg.Interval)
		go exporter.Start()
	}

	d := daemon.New(cfg, st, cfg.Driver())
	if err := d.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
