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
	"io"
	"os"

	"github.com/netclock/timingsrc/bsp"
	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/source"
	"github.com/netclock/timingsrc/timing"
	"github.com/netclock/timingsrc/timing/stats"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkFileFlag string

func init() {
	RootCmd.AddCommand(stateCmd)
	RootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFileFlag, "file", "f", "-", "request to check, '-' for stdin")
}

func stateRun(w io.Writer, driver dpll.Driver) error {
	rows := []unitStatus{
		{category: source.OnePPS, unit: dpll.UnitOnePPS},
		{category: source.Frequency, unit: dpll.UnitPrimary},
	}
	for i := range rows {
		hs, err := driver.UnitStatus(rows[i].unit)
		if err != nil {
			log.Errorf("Failed to get %s status: %v", rows[i].unit, err)
			continue
		}
		rows[i].hw = hs
	}
	return printStatus(w, rows)
}

func checkRun(w io.Writer, b []byte) timing.CheckResult {
	config := timing.NewConfig(timing.NewStore(bsp.NewDryRun(), stats.NewJSONStats()))
	res := config.CheckJSON(b)
	printCheck(w, res)
	return res
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print active timing source of each category",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := stateRun(os.Stdout, newClient()); err != nil {
			log.Fatal(err)
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the request without applying it",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		b, err := readRequest(checkFileFlag)
		if err != nil {
			log.Fatal(err)
		}
		res := checkRun(os.Stdout, b)
		if !res.Accepted() {
			os.Exit(1)
		}
	},
}
