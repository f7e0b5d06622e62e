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

package stats

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/source"
	log "github.com/sirupsen/logrus"
)

// JSONStats is what we want to report as stats via http
type JSONStats struct {
	reportMux sync.Mutex
	report    map[string]int64

	counters
}

// NewJSONStats returns a new JSONStats
func NewJSONStats() *JSONStats {
	s := &JSONStats{report: map[string]int64{}}
	s.init()
	return s
}

// Start runs http server
func (s *JSONStats) Start(monitoringport int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	addr := fmt.Sprintf(":%d", monitoringport)
	log.Infof("Starting http json server on %s", addr)
	err := http.ListenAndServe(addr, mux)
	if err != nil {
		log.Fatalf("Failed to start listener: %v", err)
	}
}

// Snapshot the values so they can be reported atomically
func (s *JSONStats) Snapshot() {
	m := s.toMap()
	s.reportMux.Lock()
	s.report = m
	s.reportMux.Unlock()
}

// Counters returns the last snapshot
func (s *JSONStats) Counters() map[string]int64 {
	s.reportMux.Lock()
	defer s.reportMux.Unlock()
	res := make(map[string]int64, len(s.report))
	for k, v := range s.report {
		res[k] = v
	}
	return res
}

// handleRequest is a handler used for all http monitoring requests
func (s *JSONStats) handleRequest(w http.ResponseWriter, _ *http.Request) {
	js, err := json.Marshal(s.Counters())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(js); err != nil {
		log.Errorf("Failed to reply: %v", err)
	}
}

// IncSet atomically add 1 to the counter
func (s *JSONStats) IncSet() {
	atomic.AddInt64(&s.set, 1)
}

// IncSetMalformed atomically add 1 to the counter
func (s *JSONStats) IncSetMalformed() {
	atomic.AddInt64(&s.setMalformed, 1)
}

// IncRejectedSource atomically add 1 to the counter
func (s *JSONStats) IncRejectedSource(c source.Category) {
	s.rejected.inc(int(c))
}

// IncCommand atomically add 1 to the counter
func (s *JSONStats) IncCommand(u dpll.Unit) {
	s.commands.inc(int(u))
}

// IncCommandError atomically add 1 to the counter
func (s *JSONStats) IncCommandError(u dpll.Unit) {
	s.commandErrs.inc(int(u))
}

// IncReload atomically add 1 to the counter
func (s *JSONStats) IncReload() {
	atomic.AddInt64(&s.reload, 1)
}

// SetTODOutput atomically sets the ToD output state
func (s *JSONStats) SetTODOutput(enabled int64) {
	atomic.StoreInt64(&s.todOutput, enabled)
}

// SetActiveSource atomically sets the rank of the active reference
func (s *JSONStats) SetActiveSource(u dpll.Unit, rank int64) {
	s.activeSource.store(int(u), rank)
}

// SetSysStats replaces process statistics
func (s *JSONStats) SetSysStats(m map[string]uint64) {
	s.sysMux.Lock()
	s.sys = m
	s.sysMux.Unlock()
}
