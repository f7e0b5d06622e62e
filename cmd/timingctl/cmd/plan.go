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
	"strings"

	"github.com/netclock/timingsrc/bsp"
	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/timing"
	"github.com/netclock/timingsrc/timing/stats"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	planFileFlag  string
	applyFileFlag string
)

func init() {
	RootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&planFileFlag, "file", "f", "-", "request to plan, '-' for stdin")
	RootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVarP(&applyFileFlag, "file", "f", "-", "request to apply, '-' for stdin")
}

// applyRequest applies the request on top of the default ranking
func applyRequest(b []byte, driver dpll.Driver) (*timing.Snapshot, error) {
	st := stats.NewJSONStats()
	store := timing.NewStore(driver, st)
	config := timing.NewConfig(store)
	if res := config.CheckJSON(b); !res.Accepted() {
		return nil, res.Fault
	}
	if err := config.SetJSON(b); err != nil {
		return nil, err
	}
	st.Snapshot()
	failed := int64(0)
	for k, v := range st.Counters() {
		if strings.HasPrefix(k, "commands.errors.") {
			failed += v
		}
	}
	if failed > 0 {
		return store.Snapshot(), fmt.Errorf("%d commands failed", failed)
	}
	return store.Snapshot(), nil
}

func planRun(w io.Writer, b []byte) error {
	driver := bsp.NewDryRun()
	snap, err := applyRequest(b, driver)
	if err != nil {
		return err
	}
	if err := printRankings(w, snap); err != nil {
		return err
	}
	return printCommands(w, driver.Commands())
}

func applyRun(w io.Writer, b []byte, driver dpll.Driver) error {
	snap, err := applyRequest(b, driver)
	if snap != nil {
		if perr := printRankings(w, snap); perr != nil {
			return perr
		}
	}
	return err
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print rankings and DPLL commands the request results in, without touching the hardware",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		b, err := readRequest(planFileFlag)
		if err != nil {
			log.Fatal(err)
		}
		if err := planRun(os.Stdout, b); err != nil {
			log.Fatal(err)
		}
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Program DPLL priorities according to the request",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		b, err := readRequest(applyFileFlag)
		if err != nil {
			log.Fatal(err)
		}
		if err := applyRun(os.Stdout, b, newClient()); err != nil {
			log.Fatal(err)
		}
	},
}
