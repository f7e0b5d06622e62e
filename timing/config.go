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
	"fmt"
	"sync"

	"github.com/netclock/timingsrc/source"
	log "github.com/sirupsen/logrus"
)

// Module is reported in faults
const Module = "timing-source"

// Fault describes why a request was rejected
type Fault struct {
	Module  string
	Message string
	Path    string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s at %s", f.Module, f.Message, f.Path)
}

// CheckResult is a verdict of Check. Request is accepted when Fault is nil.
type CheckResult struct {
	Fault *Fault
}

// Accepted tells if the request passed the check
func (r CheckResult) Accepted() bool {
	return r.Fault == nil
}

// Config is the configuration capability
type Config struct {
	setMux sync.Mutex
	store  *Store
}

// NewConfig returns Config backed by the store
func NewConfig(store *Store) *Config {
	return &Config{store: store}
}

// Set applies the request. An empty or nil request resets ToD output to default.
// A non-empty request without the expected containers is ignored.
// Requests are applied one at a time, all categories and ToD together.
func (c *Config) Set(req *Request) {
	c.setMux.Lock()
	defer c.setMux.Unlock()

	if req.Empty() {
		log.Info("empty config, using defaults")
		c.store.SetTODOutput(false)
		return
	}
	if path := req.missing(); path != "" {
		log.Errorf("wrong params for set: %s is missing, unknown keys: %v", path, req.Unknown)
		c.store.stats.IncSetMalformed()
		return
	}
	if len(req.Unknown) > 0 {
		log.Warningf("ignoring unknown keys %v", req.Unknown)
	}
	c.store.stats.IncSet()

	t := req.System.Timing
	if t.TimingSource != nil {
		for _, cat := range source.Categories {
			l, found := t.TimingSource.Sources[cat]
			if !found {
				continue
			}
			c.store.Apply(cat, l.Update())
		}
	}
	tod := false
	if t.TODOutput != nil {
		tod = *t.TODOutput
	}
	c.store.SetTODOutput(tod)
}

// SetJSON decodes and applies the request
func (c *Config) SetJSON(b []byte) error {
	req, err := DecodeRequest(b)
	if err != nil {
		c.store.stats.IncSetMalformed()
		return err
	}
	c.Set(req)
	return nil
}

// Get returns current configuration in the same shape Set accepts
func (c *Config) Get() *Request {
	snap := c.store.Snapshot()
	ts := &TimingSource{Sources: map[source.Category]SourceList{}}
	for _, cat := range source.Categories {
		ts.Sources[cat] = sourceListFrom(snap.Ranking(cat))
	}
	tod := snap.TODOutput
	return &Request{
		System: &System{
			Timing: &Timing{
				TimingSource: ts,
				TODOutput:    &tod,
			},
		},
	}
}

// Check validates structure of the request without applying it.
// A nil request is empty and accepted.
func (c *Config) Check(req *Request) CheckResult {
	if req.Empty() {
		return CheckResult{}
	}
	if path := req.missing(); path != "" {
		return CheckResult{Fault: &Fault{
			Module:  Module,
			Message: "missing container",
			Path:    path,
		}}
	}
	return CheckResult{}
}

// CheckJSON decodes and validates the request
func (c *Config) CheckJSON(b []byte) CheckResult {
	req, err := DecodeRequest(b)
	if err != nil {
		return CheckResult{Fault: &Fault{
			Module:  Module,
			Message: err.Error(),
			Path:    "/",
		}}
	}
	return c.Check(req)
}
