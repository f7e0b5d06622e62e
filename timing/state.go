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

package timing

import (
	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/source"
	log "github.com/sirupsen/logrus"
)

// reportingUnits are the units reporting active source of each category
var reportingUnits = []struct {
	unit     dpll.Unit
	category source.Category
}{
	{unit: dpll.UnitOnePPS, category: source.OnePPS},
	{unit: dpll.UnitPrimary, category: source.Frequency},
}

// State is the state capability
type State struct {
	store *Store
}

// NewState returns State backed by the store
func NewState(store *Store) *State {
	return &State{store: store}
}

// Get queries the hardware and reports the active source of each category
func (s *State) Get() *StateResponse {
	snap := s.store.Snapshot()
	res := &StateResponse{}
	for _, ru := range reportingUnits {
		hs, err := s.store.driver.UnitStatus(ru.unit)
		if err != nil {
			log.Errorf("Failed to get %s status: %v", ru.unit, err)
			hs = nil
		}
		r := snap.Ranking(ru.category)
		st := dpll.Translate(ru.unit, hs, r)
		log.Debugf("%s status: %+v", ru.category, st)
		// rank of the active source, 0 if none
		s.store.stats.SetActiveSource(ru.unit, int64(r.Index(st.Source)+1))

		switch ru.category {
		case source.OnePPS:
			res.OnePPS = sourceStatusFrom(st)
		case source.Frequency:
			res.Frequency = sourceStatusFrom(st)
		}
	}
	return res
}
