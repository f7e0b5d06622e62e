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

package bsp

import (
	"sync"

	"github.com/netclock/timingsrc/dpll"
	log "github.com/sirupsen/logrus"
)

// DryRun is a driver which doesn't touch the hardware.
// It logs and remembers every command it was given.
type DryRun struct {
	sync.Mutex
	cmds      []dpll.Command
	todOutput bool
}

// NewDryRun returns a new dry run driver
func NewDryRun() *DryRun {
	return &DryRun{}
}

func (d *DryRun) record(c dpll.Command) error {
	log.Infof("dry run: %s", c)
	d.Lock()
	d.cmds = append(d.cmds, c)
	d.Unlock()
	return nil
}

// SetOnePPSPriority records the 1PPS command
func (d *DryRun) SetOnePPSPriority(name string, priority int) error {
	return d.record(dpll.Command{Unit: dpll.UnitOnePPS, Target: name, Priority: priority})
}

// SetFrequencyPriority records the DPLL2 command
func (d *DryRun) SetFrequencyPriority(target string, priority int) error {
	return d.record(dpll.Command{Unit: dpll.UnitPrimary, Target: target, Priority: priority})
}

// SetFrequencyPriorityTertiary records the DPLL3 command
func (d *DryRun) SetFrequencyPriorityTertiary(target string, priority int) error {
	return d.record(dpll.Command{Unit: dpll.UnitTertiary, Target: target, Priority: priority})
}

// UnitStatus always reports no active source
func (d *DryRun) UnitStatus(unit dpll.Unit) (*dpll.HardwareStatus, error) {
	log.Infof("dry run: reading %s status", unit)
	return &dpll.HardwareStatus{
		Current:  dpll.None,
		Priority: []string{},
	}, nil
}

// SetTimeOfDayOutput remembers the ToD setting
func (d *DryRun) SetTimeOfDayOutput(enable bool) error {
	log.Infof("dry run: ToD output %t", enable)
	d.Lock()
	d.todOutput = enable
	d.Unlock()
	return nil
}

// Commands returns all commands recorded so far
func (d *DryRun) Commands() []dpll.Command {
	d.Lock()
	defer d.Unlock()
	res := make([]dpll.Command, len(d.cmds))
	copy(res, d.cmds)
	return res
}

// TODOutput returns the last ToD setting
func (d *DryRun) TODOutput() bool {
	d.Lock()
	defer d.Unlock()
	return d.todOutput
}
