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

package daemon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/netclock/timingsrc/bsp"
	"github.com/netclock/timingsrc/dpll"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"
)

// Config represents configuration we expect to read from file
type Config struct {
	BSPNetwork     string        // unix or tcp
	BSPAddress     string        // board support daemon socket
	BSPTimeout     time.Duration // deadline of a single board support request
	DryRun         bool          // don't touch the hardware, only log
	RankingFile    string        // JSON config request applied on start and on SIGHUP
	Interval       time.Duration // how often we poll DPLL status
	MonitoringPort int           // JSON stats port
	PrometheusPort int           // prometheus exporter port, 0 means disabled
	PidFile        string
}

// DefaultConfig returns config with default values
func DefaultConfig() *Config {
	return &Config{
		BSPNetwork:     bsp.DefaultNetwork,
		BSPAddress:     bsp.DefaultAddress,
		BSPTimeout:     bsp.DefaultTimeout,
		Interval:       time.Second,
		MonitoringPort: 4270,
	}
}

func validPort(p int) bool {
	return p >= 0 && p <= 65535
}

// EvalAndValidate makes sure config is valid
func (c *Config) EvalAndValidate() error {
	if !c.DryRun {
		if c.BSPAddress == "" {
			return fmt.Errorf("bad config: 'bspaddress' must be specified")
		}
		if c.BSPNetwork != "unix" && c.BSPNetwork != "tcp" {
			return fmt.Errorf("bad config: 'bspnetwork' must be unix or tcp")
		}
		if c.BSPTimeout <= 0 {
			return fmt.Errorf("bad config: 'bsptimeout' must be >0")
		}
	}
	if c.Interval <= 0 || c.Interval > time.Minute {
		return fmt.Errorf("bad config: 'interval' must be between 0 and 1 minute")
	}
	if !validPort(c.MonitoringPort) {
		return fmt.Errorf("bad config: 'monitoringport' must be between 0 and 65535")
	}
	if !validPort(c.PrometheusPort) {
		return fmt.Errorf("bad config: 'prometheusport' must be between 0 and 65535")
	}
	return nil
}

// Driver returns the hardware driver the config asks for
func (c *Config) Driver() dpll.Driver {
	if c.DryRun {
		return bsp.NewDryRun()
	}
	return bsp.NewClient(c.BSPNetwork, c.BSPAddress, c.BSPTimeout)
}

// CreatePidFile creates a pid file in a defined location
func (c *Config) CreatePidFile() error {
	return os.WriteFile(c.PidFile, []byte(fmt.Sprintf("%d\n", unix.Getpid())), 0644)
}

// DeletePidFile deletes a pid file from a defined location
func (c *Config) DeletePidFile() error {
	return os.Remove(c.PidFile)
}

// ReadPidFile read a pid file from a path location and returns a pid
func ReadPidFile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(content)))
}

// ReadConfig reads config and unmarshals it from yaml into Config.
// Values missing from the file keep their defaults.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	err = yaml.UnmarshalStrict(data, c)
	return c, err
}
