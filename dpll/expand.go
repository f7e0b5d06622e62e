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
	log "github.com/sirupsen/logrus"
)

// tertiarySuffix is appended to a physical input name on DPLL3
const tertiarySuffix = "-DPLL3"

// SyncE physical inputs in the order they are programmed
var syncETargets = []string{
	"SyncE-BCM82398-100G-PIN1",
	"SyncE-BCM82398-100G-PIN2",
	"SyncE-BCM82780-10G",
	"SyncE-BCM88470-10G",
}

// fanout lists physical inputs a logical frequency source occupies on each unit
type fanout struct {
	primary  []string
	tertiary []string
}

func withSuffix(targets []string) []string {
	res := make([]string, 0, len(targets))
	for _, t := range targets {
		res = append(res, t+tertiarySuffix)
	}
	return res
}

// frequencyFanout is the closed table of frequency inputs.
// PTP is never programmed on DPLL3.
var frequencyFanout = map[string]fanout{
	source.GPS: {
		primary:  []string{"GPS-10MHz"},
		tertiary: []string{"GPS-10MHz" + tertiarySuffix},
	},
	source.SMA: {
		primary:  []string{"SMA-10MHz"},
		tertiary: []string{"SMA-10MHz" + tertiarySuffix},
	},
	source.PTP: {
		primary: []string{"PTP-10MHz"},
	},
	source.BITS: {
		primary:  []string{"BITS"},
		tertiary: []string{"BITS" + tertiarySuffix},
	},
	source.SyncE: {
		primary:  syncETargets,
		tertiary: withSuffix(syncETargets),
	},
}

// ExpandFrequency turns an ordered frequency ranking into full priority lists
// for DPLL2 and DPLL3. Priorities are 1-based and dense within each unit.
// Sources without physical inputs are skipped.
func ExpandFrequency(r source.Ranking) (primary []Command, tertiary []Command) {
	primaryCounter := 0
	tertiaryCounter := 0
	for _, s := range r {
		f, found := frequencyFanout[s.Name]
		if !found {
			log.Debugf("no frequency inputs for %q, skipping", s.Name)
			continue
		}
		for _, t := range f.primary {
			primaryCounter++
			primary = append(primary, Command{Unit: UnitPrimary, Target: t, Priority: primaryCounter})
		}
		for _, t := range f.tertiary {
			tertiaryCounter++
			tertiary = append(tertiary, Command{Unit: UnitTertiary, Target: t, Priority: tertiaryCounter})
		}
	}
	return primary, tertiary
}

// ExpandOnePPS turns an ordered 1PPS ranking into the full priority list of DPLL1.
// 1PPS inputs are named after the sources.
func ExpandOnePPS(r source.Ranking) []Command {
	res := make([]Command, 0, len(r))
	for i, s := range r {
		res = append(res, Command{Unit: UnitOnePPS, Target: s.Name, Priority: i + 1})
	}
	return res
}

// Expand returns every command needed to program a category, unit by unit
func Expand(c source.Category, r source.Ranking) []Command {
	switch c {
	case source.OnePPS:
		return ExpandOnePPS(r)
	case source.Frequency:
		primary, tertiary := ExpandFrequency(r)
		return append(primary, tertiary...)
	}
	return nil
}
