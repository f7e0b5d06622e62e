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

/*
Package bsp implements the hardware driver on top of the board support
daemon. The daemon owns the clock chip and speaks a simple protocol:
one JSON request per connection, one JSON reply.
*/
package bsp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/netclock/timingsrc/dpll"
	log "github.com/sirupsen/logrus"
)

// Defaults for the board support daemon socket
const (
	DefaultNetwork = "unix"
	DefaultAddress = "/run/bspd/bspd.sock"
	DefaultTimeout = time.Second
)

// commands understood by the board support daemon
const (
	cmdSetOnePPSPriority            = "set_1pps_priority"
	cmdSetFrequencyPriority         = "set_frequency_priority"
	cmdSetFrequencyPriorityTertiary = "set_frequency_priority_dpll3"
	cmdGetDPLLStatus                = "get_dpll_status"
	cmdSetTODOutput                 = "set_tod_output"
)

// ErrRemote is wrapped around errors reported by the board support daemon
var ErrRemote = errors.New("board support daemon error")

type request struct {
	Cmd      string `json:"cmd"`
	Name     string `json:"name,omitempty"`
	Priority int    `json:"priority,omitempty"`
	DPLL     int    `json:"dpll,omitempty"`
	Enable   *int   `json:"enable,omitempty"`
}

// Status is a DPLL status as reported by the board support daemon
type Status struct {
	DPLLLock        string `json:"dpll_lock"`
	OperatingStatus string `json:"operating_status"`
}

type reply struct {
	Error    string   `json:"error"`
	Current  string   `json:"current"`
	Priority []string `json:"priority"`
	Status   Status   `json:"status"`
}

// roundTrip sends the request and reads the reply
func roundTrip(conn io.ReadWriter, req *request) (*reply, error) {
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return nil, fmt.Errorf("writing to board support conn: %w", err)
	}
	var r reply
	if err := json.NewDecoder(conn).Decode(&r); err != nil {
		return nil, fmt.Errorf("reading from board support conn: %w", err)
	}
	if r.Error != "" {
		return nil, fmt.Errorf("%s: %w: %s", req.Cmd, ErrRemote, r.Error)
	}
	return &r, nil
}

// Client talks to the board support daemon
type Client struct {
	Network string
	Address string
	Timeout time.Duration
}

// NewClient returns a client for the given socket
func NewClient(network, address string, timeout time.Duration) *Client {
	return &Client{
		Network: network,
		Address: address,
		Timeout: timeout,
	}
}

func (c *Client) call(req *request) (*reply, error) {
	conn, err := net.DialTimeout(c.Network, c.Address, c.Timeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	deadline := time.Now().Add(c.Timeout)
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}
	log.Debugf("bsp request: %+v", req)
	return roundTrip(conn, req)
}

// SetOnePPSPriority sets priority of a 1PPS input on DPLL1
func (c *Client) SetOnePPSPriority(name string, priority int) error {
	_, err := c.call(&request{Cmd: cmdSetOnePPSPriority, Name: name, Priority: priority})
	return err
}

// SetFrequencyPriority sets priority of a frequency input on DPLL2
func (c *Client) SetFrequencyPriority(target string, priority int) error {
	_, err := c.call(&request{Cmd: cmdSetFrequencyPriority, Name: target, Priority: priority})
	return err
}

// SetFrequencyPriorityTertiary sets priority of a frequency input on DPLL3
func (c *Client) SetFrequencyPriorityTertiary(target string, priority int) error {
	_, err := c.call(&request{Cmd: cmdSetFrequencyPriorityTertiary, Name: target, Priority: priority})
	return err
}

// UnitStatus reads status of the DPLL
func (c *Client) UnitStatus(unit dpll.Unit) (*dpll.HardwareStatus, error) {
	r, err := c.call(&request{Cmd: cmdGetDPLLStatus, DPLL: int(unit)})
	if err != nil {
		return nil, err
	}
	return &dpll.HardwareStatus{
		Current:        r.Current,
		Priority:       r.Priority,
		LockState:      r.Status.DPLLLock,
		OperatingState: r.Status.OperatingStatus,
	}, nil
}

// SetTimeOfDayOutput enables or disables ToD output
func (c *Client) SetTimeOfDayOutput(enable bool) error {
	e := 0
	if enable {
		e = 1
	}
	_, err := c.call(&request{Cmd: cmdSetTODOutput, Enable: &e})
	return err
}
