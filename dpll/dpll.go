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
Package dpll maps logical timing references onto the physical inputs of the
clock selection units and back.

The device has three DPLLs. DPLL1 selects among 1PPS references, DPLL2 among
frequency references, and DPLL3 keeps an independent priority list for the same
frequency references minus PTP.
*/
package dpll

import (
	"fmt"
)

// Unit is a hardware clock selection unit
type Unit int

// Units as numbered by the board support package
const (
	UnitOnePPS   Unit = 1
	UnitPrimary  Unit = 2
	UnitTertiary Unit = 3
)

var unitToString = map[Unit]string{
	UnitOnePPS:   "dpll1",
	UnitPrimary:  "dpll2",
	UnitTertiary: "dpll3",
}

func (u Unit) String() string {
	s, found := unitToString[u]
	if !found {
		return "UNSUPPORTED VALUE"
	}
	return s
}

// Command is a single priority assignment for a physical input of a unit
type Command struct {
	Unit     Unit
	Target   string
	Priority int
}

func (c Command) String() string {
	return fmt.Sprintf("%s: %s=%d", c.Unit, c.Target, c.Priority)
}
