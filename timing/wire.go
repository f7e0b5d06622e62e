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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/source"
)

// Keys of the management model
const (
	SystemKey       = "vyatta-system-v1:system"
	TimingKey       = "vyatta-system-timing-v1:timing"
	TimingSourceKey = "timing-source"
	TODOutputKey    = "tod-output"
	TimingStatusKey = "timing-status"
)

var errMissingName = errors.New("source name is missing")
var errMissingWeight = errors.New("weighted-priority is missing")

// SourceEntry is a single source with its weight
type SourceEntry struct {
	Source           string `json:"source"`
	WeightedPriority int    `json:"weighted-priority"`
}

// SourceList is an ordered list of sources of one category.
// On the wire it is a list of entries, a map of name to weight is accepted as well.
type SourceList []SourceEntry

type sourceEntryJSON struct {
	Source           string `json:"source"`
	SrcName          string `json:"src-name"`
	WeightedPriority *int   `json:"weighted-priority"`
}

// UnmarshalJSON accepts both list and map form
func (l *SourceList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.HasPrefix(b, []byte("{")) {
		var m map[string]sourceEntryJSON
		if err := json.Unmarshal(b, &m); err != nil {
			return err
		}
		res := make(SourceList, 0, len(m))
		for name, e := range m {
			if e.WeightedPriority == nil {
				return fmt.Errorf("%s: %w", name, errMissingWeight)
			}
			res = append(res, SourceEntry{Source: name, WeightedPriority: *e.WeightedPriority})
		}
		sort.Slice(res, func(i, j int) bool { return res[i].Source < res[j].Source })
		*l = res
		return nil
	}
	var entries []sourceEntryJSON
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	res := make(SourceList, 0, len(entries))
	for i, e := range entries {
		name := e.Source
		if name == "" {
			name = e.SrcName
		}
		if name == "" {
			return fmt.Errorf("entry %d: %w", i, errMissingName)
		}
		if e.WeightedPriority == nil {
			return fmt.Errorf("%s: %w", name, errMissingWeight)
		}
		res = append(res, SourceEntry{Source: name, WeightedPriority: *e.WeightedPriority})
	}
	*l = res
	return nil
}

// Update returns weights by source name
func (l SourceList) Update() map[string]int {
	res := make(map[string]int, len(l))
	for _, e := range l {
		res[e.Source] = e.WeightedPriority
	}
	return res
}

func sourceListFrom(r source.Ranking) SourceList {
	res := make(SourceList, 0, len(r))
	for _, s := range r {
		res = append(res, SourceEntry{Source: s.Name, WeightedPriority: s.WeightedPriority})
	}
	return res
}

// TimingSource holds per-category source lists present in a request
type TimingSource struct {
	Sources map[source.Category]SourceList
}

// Timing is the timing container
type Timing struct {
	TimingSource *TimingSource
	TODOutput    *bool
}

// System is the system container
type System struct {
	Timing *Timing
}

// Request is a config request or response of the Config capability
type Request struct {
	System *System
	// Unknown holds paths of keys which were not recognized
	Unknown []string
}

// Empty tells if the request has no content at all. A nil request is empty.
func (r *Request) Empty() bool {
	return r == nil || (r.System == nil && len(r.Unknown) == 0)
}

// missing returns path of the first container a non-empty request lacks
func (r *Request) missing() string {
	path := "/" + SystemKey
	if r.System == nil {
		return path
	}
	path += "/" + TimingKey
	if r.System.Timing == nil {
		return path
	}
	t := r.System.Timing
	if t.TimingSource == nil && t.TODOutput == nil {
		return path + "/" + TimingSourceKey
	}
	return ""
}

// splitKeys decodes a JSON object and separates known keys from the rest
func splitKeys(path string, b []byte, known ...string) (map[string]json.RawMessage, []string, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	res := map[string]json.RawMessage{}
	unknown := []string{}
	for k, v := range m {
		isKnown := false
		for _, kk := range known {
			if k == kk {
				isKnown = true
				break
			}
		}
		if isKnown {
			res[k] = v
		} else {
			unknown = append(unknown, path+"/"+k)
		}
	}
	sort.Strings(unknown)
	return res, unknown, nil
}

func isNull(b json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

// DecodeRequest parses the request from its JSON form
func DecodeRequest(b []byte) (*Request, error) {
	req := &Request{}
	if len(bytes.TrimSpace(b)) == 0 || isNull(b) {
		return req, nil
	}
	top, unknown, err := splitKeys("", b, SystemKey)
	if err != nil {
		return nil, err
	}
	req.Unknown = append(req.Unknown, unknown...)
	rawSystem, found := top[SystemKey]
	if !found {
		return req, nil
	}
	// a null container is present but empty
	req.System = &System{}
	if isNull(rawSystem) {
		return req, nil
	}

	path := "/" + SystemKey
	sys, unknown, err := splitKeys(path, rawSystem, TimingKey)
	if err != nil {
		return nil, err
	}
	req.Unknown = append(req.Unknown, unknown...)
	rawTiming, found := sys[TimingKey]
	if !found || isNull(rawTiming) {
		return req, nil
	}

	path += "/" + TimingKey
	tm, unknown, err := splitKeys(path, rawTiming, TimingSourceKey, TODOutputKey)
	if err != nil {
		return nil, err
	}
	req.Unknown = append(req.Unknown, unknown...)
	req.System.Timing = &Timing{}
	if rawTOD, found := tm[TODOutputKey]; found && !isNull(rawTOD) {
		var tod bool
		if err := json.Unmarshal(rawTOD, &tod); err != nil {
			return nil, fmt.Errorf("decoding %s/%s: %w", path, TODOutputKey, err)
		}
		req.System.Timing.TODOutput = &tod
	}
	rawTS, found := tm[TimingSourceKey]
	if !found || isNull(rawTS) {
		return req, nil
	}

	path += "/" + TimingSourceKey
	known := []string{}
	for _, c := range source.Categories {
		known = append(known, c.String())
	}
	ts, unknown, err := splitKeys(path, rawTS, known...)
	if err != nil {
		return nil, err
	}
	req.Unknown = append(req.Unknown, unknown...)
	req.System.Timing.TimingSource = &TimingSource{Sources: map[source.Category]SourceList{}}
	for k, v := range ts {
		var c source.Category
		if err := c.UnmarshalText([]byte(k)); err != nil {
			return nil, err
		}
		var l SourceList
		if err := json.Unmarshal(v, &l); err != nil {
			return nil, fmt.Errorf("decoding %s/%s: %w", path, k, err)
		}
		req.System.Timing.TimingSource.Sources[c] = l
	}
	return req, nil
}

type timingJSON struct {
	TimingSource map[string]SourceList `json:"timing-source,omitempty"`
	TODOutput    *bool                 `json:"tod-output,omitempty"`
}

// MarshalJSON encodes the request into the model shape
func (r *Request) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if r.System != nil {
		sys := map[string]any{}
		if t := r.System.Timing; t != nil {
			tj := timingJSON{TODOutput: t.TODOutput}
			if t.TimingSource != nil {
				tj.TimingSource = map[string]SourceList{}
				for c, l := range t.TimingSource.Sources {
					tj.TimingSource[c.String()] = l
				}
			}
			sys[TimingKey] = tj
		}
		out[SystemKey] = sys
	}
	return json.Marshal(out)
}

// SourceStatus is a status of one category
type SourceStatus struct {
	Source          string   `json:"source"`
	Priority        []string `json:"priority"`
	OperatingStatus string   `json:"operating-status"`
}

func sourceStatusFrom(st dpll.SourceStatus) SourceStatus {
	return SourceStatus{
		Source:          st.Source,
		Priority:        st.Priority,
		OperatingStatus: st.OperatingStatus,
	}
}

// StateResponse is a response of the State capability
type StateResponse struct {
	OnePPS    SourceStatus
	Frequency SourceStatus
}

type timingStatusJSON struct {
	TimingSource struct {
		OnePPS    SourceStatus `json:"one-pps-status"`
		Frequency SourceStatus `json:"frequency-status"`
	} `json:"timing-source"`
}

// MarshalJSON encodes the state into the model shape
func (s *StateResponse) MarshalJSON() ([]byte, error) {
	ts := timingStatusJSON{}
	ts.TimingSource.OnePPS = s.OnePPS
	ts.TimingSource.Frequency = s.Frequency
	return json.Marshal(map[string]any{
		SystemKey: map[string]any{
			TimingKey: map[string]any{
				TimingStatusKey: ts,
			},
		},
	})
}
