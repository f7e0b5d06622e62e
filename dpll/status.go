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
	"github.com/netclock/timingsrc/source"
)

// None is reported when no known source is active
const None = "None"

// HardwareStatus is what the board support package reports for a unit
type HardwareStatus struct {
	// Current is the input the unit is locked to
	Current string
	// Priority is the input list as programmed in the unit
	Priority       []string
	LockState      string
	OperatingState string
}

// SourceStatus is a logical view of a unit status
type SourceStatus struct {
	Source          string
	Priority        []string
	OperatingStatus string
}

// frequencyInputToSource maps DPLL2 inputs back to logical sources
var frequencyInputToSource = map[string]string{
	"GPS-10MHz":                "GPS",
	"SyncE-BCM82398-100G-PIN1": "SYNCE",
	"SyncE-BCM82398-100G-PIN2": "SYNCE",
	"SyncE-BCM82780-10G":       "SYNCE",
	"SyncE-BCM88470-10G":       "SYNCE",
	"PTP-10MHz":                "PTP",
	"SMA-10MHz":                "SMA",
	"BITS":                     "BITS",
}

// SourceName returns logical source name for the input reported by the unit
func SourceName(unit Unit, current string) string {
	if current == "" {
		return None
	}
	switch unit {
	case UnitOnePPS:
		// 1PPS inputs are named after the sources
		return current
	case UnitPrimary:
		s, found := frequencyInputToSource[current]
		if !found {
			return None
		}
		return s
	}
	return None
}

// Translate builds a logical status of the unit. A nil status means
// the hardware didn't tell us anything.
func Translate(unit Unit, hs *HardwareStatus, r source.Ranking) SourceStatus {
	st := SourceStatus{
		Source:   None,
		Priority: make([]string, 0, len(r)),
	}
	for _, s := range r {
		st.Priority = append(st.Priority, s.String())
	}
	if hs == nil {
		return st
	}
	st.Source = SourceName(unit, hs.Current)
	st.OperatingStatus = hs.OperatingState
	return st
}
