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

	"github.com/netclock/timingsrc/bsp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd is a main entry point
var RootCmd = &cobra.Command{
	Use:   "timingctl",
	Short: "Plan, apply and inspect timing source priorities",
}

// flags
var (
	rootVerboseFlag    bool
	rootBSPNetworkFlag string
	rootBSPAddressFlag string
	rootBSPTimeoutFlag time.Duration
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&rootVerboseFlag, "verbose", "v", false, "verbose output")
	RootCmd.PersistentFlags().StringVarP(&rootBSPNetworkFlag, "bspnetwork", "n", bsp.DefaultNetwork, "board support daemon network, unix or tcp")
	RootCmd.PersistentFlags().StringVarP(&rootBSPAddressFlag, "bsp", "b", bsp.DefaultAddress, "board support daemon address")
	RootCmd.PersistentFlags().DurationVarP(&rootBSPTimeoutFlag, "timeout", "t", bsp.DefaultTimeout, "board support request timeout")
}

// ConfigureVerbosity configures log verbosity based on parsed flags. Needs to be called by any subcommand.
func ConfigureVerbosity() {
	log.SetLevel(log.WarnLevel)
	if rootVerboseFlag {
		log.SetLevel(log.DebugLevel)
	}
}

func newClient() *bsp.Client {
	return bsp.NewClient(rootBSPNetworkFlag, rootBSPAddressFlag, rootBSPTimeoutFlag)
}

// readRequest reads request from the file, '-' means stdin
func readRequest(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// Execute is the main entry point for CLI interface
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
