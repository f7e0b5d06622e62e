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
Package stats implements statistics collection and reporting.
It is used by the timing source store to report applied updates,
commands sent to the hardware and the currently active references.
*/
package stats

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/source"
	"golang.org/x/exp/maps"
)

// Stats is a metric collection interface
type Stats interface {
	// Start starts a stat reporter
	// Use this for passive reporters
	Start(monitoringport int)

	// Snapshot the values so they can be reported atomically
	Snapshot()

	// IncSet atomically add 1 to the counter
	IncSet()

	// IncSetMalformed atomically add 1 to the counter
	IncSetMalformed()

	// IncRejectedSource atomically add 1 to the counter
	IncRejectedSource(c source.Category)

	// IncCommand atomically add 1 to the counter
	IncCommand(u dpll.Unit)

	// IncCommandError atomically add 1 to the counter
	IncCommandError(u dpll.Unit)

	// IncReload atomically add 1 to the counter
	IncReload()

	// SetTODOutput atomically sets the ToD output state
	SetTODOutput(enabled int64)

	// SetActiveSource atomically sets the rank of the reference the unit is locked to, 0 is none
	SetActiveSource(u dpll.Unit, rank int64)

	// SetSysStats replaces process statistics
	SetSysStats(s map[string]uint64)
}

// syncMapInt64 sync map of per-unit or per-category counters
type syncMapInt64 struct {
	sync.Mutex
	m map[int]int64
}

// init initializes the underlying map
func (s *syncMapInt64) init() {
	s.m = make(map[int]int64)
}

// keys returns sorted keys of the underlying map
func (s *syncMapInt64) keys() []int {
	s.Lock()
	keys := maps.Keys(s.m)
	s.Unlock()
	sort.Ints(keys)
	return keys
}

// load gets the value by the key
func (s *syncMapInt64) load(key int) int64 {
	s.Lock()
	defer s.Unlock()
	return s.m[key]
}

// inc increments the counter for the given key
func (s *syncMapInt64) inc(key int) {
	s.Lock()
	s.m[key]++
	s.Unlock()
}

// store saves the value with the key
func (s *syncMapInt64) store(key int, value int64) {
	s.Lock()
	s.m[key] = value
	s.Unlock()
}

type counters struct {
	rejected     syncMapInt64
	commands     syncMapInt64
	commandErrs  syncMapInt64
	activeSource syncMapInt64
	set          int64
	setMalformed int64
	reload       int64
	todOutput    int64

	sysMux sync.Mutex
	sys    map[string]uint64
}

func (c *counters) init() {
	c.rejected.init()
	c.commands.init()
	c.commandErrs.init()
	c.activeSource.init()
	c.sys = make(map[string]uint64)
}

// toMap converts counters to a map
func (c *counters) toMap() (export map[string]int64) {
	res := make(map[string]int64)

	for _, t := range c.rejected.keys() {
		res[fmt.Sprintf("set.rejected.%s", source.Category(t))] = c.rejected.load(t)
	}

	for _, t := range c.commands.keys() {
		res[fmt.Sprintf("commands.%s", dpll.Unit(t))] = c.commands.load(t)
	}

	for _, t := range c.commandErrs.keys() {
		res[fmt.Sprintf("commands.errors.%s", dpll.Unit(t))] = c.commandErrs.load(t)
	}

	for _, t := range c.activeSource.keys() {
		res[fmt.Sprintf("active.%s", dpll.Unit(t))] = c.activeSource.load(t)
	}

	c.sysMux.Lock()
	for k, v := range c.sys {
		res[fmt.Sprintf("sys.%s", k)] = int64(v)
	}
	c.sysMux.Unlock()

	res["set"] = atomic.LoadInt64(&c.set)
	res["set.malformed"] = atomic.LoadInt64(&c.setMalformed)
	res["reload"] = atomic.LoadInt64(&c.reload)
	res["tod_output"] = atomic.LoadInt64(&c.todOutput)

	return res
}
