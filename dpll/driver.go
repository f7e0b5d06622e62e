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

package dpll

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var errUnsupportedUnit = errors.New("unsupported unit")

// Driver programs the clock hardware and reads its status
type Driver interface {
	// SetOnePPSPriority sets priority of a 1PPS input on DPLL1
	SetOnePPSPriority(name string, priority int) error
	// SetFrequencyPriority sets priority of a frequency input on DPLL2
	SetFrequencyPriority(target string, priority int) error
	// SetFrequencyPriorityTertiary sets priority of a frequency input on DPLL3
	SetFrequencyPriorityTertiary(target string, priority int) error
	// UnitStatus reads current status of the unit
	UnitStatus(unit Unit) (*HardwareStatus, error)
	// SetTimeOfDayOutput enables or disables ToD output
	SetTimeOfDayOutput(enable bool) error
}

// Issue sends a single command to the driver
func Issue(d Driver, c Command) error {
	switch c.Unit {
	case UnitOnePPS:
		return d.SetOnePPSPriority(c.Target, c.Priority)
	case UnitPrimary:
		return d.SetFrequencyPriority(c.Target, c.Priority)
	case UnitTertiary:
		return d.SetFrequencyPriorityTertiary(c.Target, c.Priority)
	}
	return fmt.Errorf("%w: %d", errUnsupportedUnit, c.Unit)
}

// CommandError is returned when the driver fails to apply a command
type CommandError struct {
	Command Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("setting %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Emit sends all commands in order. A failed command doesn't stop the rest,
// all errors are returned.
func Emit(d Driver, cmds []Command) []*CommandError {
	var errs []*CommandError
	for _, c := range cmds {
		log.Debugf("setting priority %s", c)
		if err := Issue(d, c); err != nil {
			log.Errorf("Failed to set priority %s: %v", c, err)
			errs = append(errs, &CommandError{Command: c, Err: err})
		}
	}
	return errs
}
