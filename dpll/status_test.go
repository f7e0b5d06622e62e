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
	"testing"

	"github.com/netclock/timingsrc/source"
	"github.com/stretchr/testify/require"
)

func TestSourceNameOnePPS(t *testing.T) {
	require.Equal(t, "GPS-1PPS", SourceName(UnitOnePPS, "GPS-1PPS"))
	require.Equal(t, "None", SourceName(UnitOnePPS, "None"))
	require.Equal(t, "None", SourceName(UnitOnePPS, ""))
}

func TestSourceNamePrimary(t *testing.T) {
	for input, name := range frequencyInputToSource {
		require.Equal(t, name, SourceName(UnitPrimary, input))
	}
	require.Equal(t, "SYNCE", SourceName(UnitPrimary, "SyncE-BCM82398-100G-PIN1"))
	require.Equal(t, "SYNCE", SourceName(UnitPrimary, "SyncE-BCM88470-10G"))
	require.Equal(t, "None", SourceName(UnitPrimary, "None"))
	require.Equal(t, "None", SourceName(UnitPrimary, ""))
	require.Equal(t, "None", SourceName(UnitPrimary, "GPS-10MHz-DPLL3"))
	require.Equal(t, "None", SourceName(UnitTertiary, "GPS-10MHz-DPLL3"))
}

// every primary input we program must be translatable back
func TestSourceNameCoversFanout(t *testing.T) {
	primary, _ := ExpandFrequency(source.Defaults()[source.Frequency])
	for _, c := range primary {
		require.NotEqual(t, None, SourceName(UnitPrimary, c.Target), c.Target)
	}
}

func TestTranslateOnePPS(t *testing.T) {
	hs := &HardwareStatus{
		Current:        "GPS-1PPS",
		Priority:       []string{"GPS-1PPS", "PTP-1PPS", "SMA-1PPS"},
		LockState:      "Phase locked",
		OperatingState: "Free Run",
	}
	st := Translate(UnitOnePPS, hs, source.Defaults()[source.OnePPS])
	require.Equal(t, SourceStatus{
		Source: "GPS-1PPS",
		Priority: []string{
			"weighted_priority:50, source:GPS-1PPS",
			"weighted_priority:40, source:PTP-1PPS",
			"weighted_priority:30, source:SMA-1PPS",
			"weighted_priority:20, source:ToD-1PPS",
		},
		OperatingStatus: "Free Run",
	}, st)
}

func TestTranslateOnePPSCurrentNone(t *testing.T) {
	hs := &HardwareStatus{
		Current:        "None",
		Priority:       []string{},
		OperatingState: "Free Run",
	}
	st := Translate(UnitOnePPS, hs, source.Defaults()[source.OnePPS])
	require.Equal(t, "None", st.Source)
	require.Equal(t, "Free Run", st.OperatingStatus)
}

func TestTranslateFrequency(t *testing.T) {
	hs := &HardwareStatus{
		Current:        "SyncE-BCM82398-100G-PIN1",
		Priority:       []string{"SyncE-BCM82398-100G-PIN1", "GPS-10MHz", "PTP-10MHz"},
		LockState:      "Phase locked",
		OperatingState: "Locked",
	}
	st := Translate(UnitPrimary, hs, source.Defaults()[source.Frequency])
	require.Equal(t, "SYNCE", st.Source)
	require.Equal(t, "Locked", st.OperatingStatus)
	require.Len(t, st.Priority, 5)

	hs.Current = "None"
	st = Translate(UnitPrimary, hs, source.Defaults()[source.Frequency])
	require.Equal(t, "None", st.Source)
}

func TestTranslateMissingStatus(t *testing.T) {
	st := Translate(UnitPrimary, nil, nil)
	require.Equal(t, SourceStatus{Source: "None", Priority: []string{}}, st)

	st = Translate(UnitOnePPS, &HardwareStatus{}, nil)
	require.Equal(t, SourceStatus{Source: "None", Priority: []string{}}, st)
}

// priorities are reported in stored order, not re-sorted
func TestTranslateKeepsOrder(t *testing.T) {
	r := source.Ranking{
		{Name: source.BITS, WeightedPriority: 10},
		{Name: source.GPS, WeightedPriority: 50},
	}
	st := Translate(UnitPrimary, &HardwareStatus{Current: "BITS"}, r)
	require.Equal(t, "BITS", st.Source)
	require.Equal(t, []string{
		"weighted_priority:10, source:BITS",
		"weighted_priority:50, source:GPS",
	}, st.Priority)
}
