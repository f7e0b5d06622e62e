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
Package timing keeps the desired ranking of timing references and
programs the clock selection units whenever it changes.

Store is the single owner of the ranking. Config and State are the
capabilities exposed to the host management runtime.
*/
package timing

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/source"
	"github.com/netclock/timingsrc/timing/stats"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

// Snapshot is an immutable view of the store
type Snapshot struct {
	rankings  map[source.Category]source.Ranking
	TODOutput bool
}

// Ranking returns a copy of the category ranking in stored order
func (s *Snapshot) Ranking(c source.Category) source.Ranking {
	return s.rankings[c].Clone()
}

// Fingerprint returns a hash of the snapshot content
func (s *Snapshot) Fingerprint() uint64 {
	h := xxhash.New()
	for _, c := range source.Categories {
		fmt.Fprintf(h, "%s:", c)
		for _, src := range s.rankings[c] {
			fmt.Fprintf(h, "%s=%d;", src.Name, src.WeightedPriority)
		}
	}
	fmt.Fprintf(h, "tod=%t", s.TODOutput)
	return h.Sum64()
}

// Store holds the live ranking, guarded by mutex.
// Readers use Snapshot and never block on writers.
type Store struct {
	sync.Mutex

	rankings  map[source.Category]source.Ranking
	todOutput bool

	driver dpll.Driver
	stats  stats.Stats

	snapshot atomic.Pointer[Snapshot]
}

// NewStore returns a store seeded with the default ranking.
// Nothing is sent to the driver until the first update.
func NewStore(driver dpll.Driver, st stats.Stats) *Store {
	s := &Store{
		rankings: source.Defaults(),
		driver:   driver,
		stats:    st,
	}
	s.publish()
	return s
}

// publish must be called with the lock held
func (s *Store) publish() {
	snap := &Snapshot{
		rankings:  make(map[source.Category]source.Ranking, len(s.rankings)),
		TODOutput: s.todOutput,
	}
	for c, r := range s.rankings {
		snap.rankings[c] = r.Clone()
	}
	s.snapshot.Store(snap)
}

// Snapshot returns the last consistent state of the store
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Apply merges new weights into the category, re-sorts it and programs every
// unit the category maps to. Names the category doesn't know are skipped and
// returned. The whole priority list is sent even if nothing changed.
func (s *Store) Apply(c source.Category, update map[string]int) (rejected []string) {
	s.Lock()
	defer s.Unlock()

	r, found := s.rankings[c]
	if !found {
		log.Errorf("unknown category %d, ignoring update", c)
		return maps.Keys(update)
	}
	r = r.Clone()

	names := maps.Keys(update)
	sort.Strings(names)
	for _, name := range names {
		i := r.Index(name)
		if i < 0 {
			rejected = append(rejected, name)
			s.stats.IncRejectedSource(c)
			continue
		}
		r[i].WeightedPriority = update[name]
	}
	if len(rejected) > 0 {
		log.Warningf("%s: ignoring unknown sources %v", c, rejected)
	}

	r = source.Resolve(r)
	s.rankings[c] = r
	log.Infof("%s: new ranking %v", c, r)

	s.emit(dpll.Expand(c, r))
	s.publish()
	return rejected
}

// emit must be called with the lock held
func (s *Store) emit(cmds []dpll.Command) {
	for _, c := range cmds {
		s.stats.IncCommand(c.Unit)
	}
	for _, err := range dpll.Emit(s.driver, cmds) {
		s.stats.IncCommandError(err.Command.Unit)
	}
}

// SetTODOutput enables or disables time of day output
func (s *Store) SetTODOutput(enable bool) {
	s.Lock()
	defer s.Unlock()

	s.todOutput = enable
	log.Debugf("setting ToD output to %t", enable)
	if err := s.driver.SetTimeOfDayOutput(enable); err != nil {
		log.Errorf("Failed to set ToD output to %t: %v", enable, err)
	}
	s.stats.SetTODOutput(bool2int(enable))
	s.publish()
}

// TODOutput returns current ToD output setting
func (s *Store) TODOutput() bool {
	return s.Snapshot().TODOutput
}

func bool2int(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
