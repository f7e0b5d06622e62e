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
	"strings"
	"testing"

	"github.com/netclock/timingsrc/source"
	"github.com/stretchr/testify/require"
)

func targets(cmds []Command) []string {
	res := []string{}
	for _, c := range cmds {
		res = append(res, c.Target)
	}
	return res
}

func requireDense(t *testing.T, cmds []Command) {
	for i, c := range cmds {
		require.Equal(t, i+1, c.Priority, "command %s", c)
	}
}

func TestUnitString(t *testing.T) {
	require.Equal(t, "dpll1", UnitOnePPS.String())
	require.Equal(t, "dpll2", UnitPrimary.String())
	require.Equal(t, "dpll3", UnitTertiary.String())
	require.Equal(t, "UNSUPPORTED VALUE", Unit(42).String())
}

func TestCommandString(t *testing.T) {
	c := Command{Unit: UnitTertiary, Target: "BITS-DPLL3", Priority: 7}
	require.Equal(t, "dpll3: BITS-DPLL3=7", c.String())
}

func TestExpandFrequencyDefaults(t *testing.T) {
	primary, tertiary := ExpandFrequency(source.Defaults()[source.Frequency])
	require.Equal(t, []string{
		"GPS-10MHz",
		"SyncE-BCM82398-100G-PIN1",
		"SyncE-BCM82398-100G-PIN2",
		"SyncE-BCM82780-10G",
		"SyncE-BCM88470-10G",
		"PTP-10MHz",
		"SMA-10MHz",
		"BITS",
	}, targets(primary))
	require.Equal(t, []string{
		"GPS-10MHz-DPLL3",
		"SyncE-BCM82398-100G-PIN1-DPLL3",
		"SyncE-BCM82398-100G-PIN2-DPLL3",
		"SyncE-BCM82780-10G-DPLL3",
		"SyncE-BCM88470-10G-DPLL3",
		"SMA-10MHz-DPLL3",
		"BITS-DPLL3",
	}, targets(tertiary))
	requireDense(t, primary)
	requireDense(t, tertiary)
}

func TestExpandFrequencyGPSDemoted(t *testing.T) {
	r := source.Ranking{
		{Name: source.SyncE, WeightedPriority: 40},
		{Name: source.PTP, WeightedPriority: 30},
		{Name: source.GPS, WeightedPriority: 25},
		{Name: source.SMA, WeightedPriority: 20},
		{Name: source.BITS, WeightedPriority: 10},
	}
	primary, tertiary := ExpandFrequency(r)
	require.Equal(t, []Command{
		{Unit: UnitPrimary, Target: "SyncE-BCM82398-100G-PIN1", Priority: 1},
		{Unit: UnitPrimary, Target: "SyncE-BCM82398-100G-PIN2", Priority: 2},
		{Unit: UnitPrimary, Target: "SyncE-BCM82780-10G", Priority: 3},
		{Unit: UnitPrimary, Target: "SyncE-BCM88470-10G", Priority: 4},
		{Unit: UnitPrimary, Target: "PTP-10MHz", Priority: 5},
		{Unit: UnitPrimary, Target: "GPS-10MHz", Priority: 6},
		{Unit: UnitPrimary, Target: "SMA-10MHz", Priority: 7},
		{Unit: UnitPrimary, Target: "BITS", Priority: 8},
	}, primary)
	require.Equal(t, []Command{
		{Unit: UnitTertiary, Target: "SyncE-BCM82398-100G-PIN1-DPLL3", Priority: 1},
		{Unit: UnitTertiary, Target: "SyncE-BCM82398-100G-PIN2-DPLL3", Priority: 2},
		{Unit: UnitTertiary, Target: "SyncE-BCM82780-10G-DPLL3", Priority: 3},
		{Unit: UnitTertiary, Target: "SyncE-BCM88470-10G-DPLL3", Priority: 4},
		{Unit: UnitTertiary, Target: "GPS-10MHz-DPLL3", Priority: 5},
		{Unit: UnitTertiary, Target: "SMA-10MHz-DPLL3", Priority: 6},
		{Unit: UnitTertiary, Target: "BITS-DPLL3", Priority: 7},
	}, tertiary)
}

// every rotation of the default ranking puts SYNCE and PTP at a different position
func rotations(r source.Ranking) []source.Ranking {
	res := []source.Ranking{}
	for i := range r {
		rot := append(r[i:].Clone(), r[:i]...)
		res = append(res, rot)
	}
	return res
}

func TestExpandFrequencyNoPTPOnTertiary(t *testing.T) {
	for _, r := range rotations(source.Defaults()[source.Frequency]) {
		primary, tertiary := ExpandFrequency(r)
		require.Contains(t, targets(primary), "PTP-10MHz")
		for _, c := range tertiary {
			require.False(t, strings.HasPrefix(c.Target, "PTP"), "PTP on DPLL3 for %v", r.Names())
			require.Equal(t, UnitTertiary, c.Unit)
		}
		require.Len(t, tertiary, len(primary)-1)
		requireDense(t, primary)
		requireDense(t, tertiary)
	}
}

func TestExpandFrequencySyncEFanout(t *testing.T) {
	for _, r := range rotations(source.Defaults()[source.Frequency]) {
		primary, tertiary := ExpandFrequency(r)
		p := []string{}
		for _, c := range primary {
			if strings.HasPrefix(c.Target, "SyncE") {
				p = append(p, c.Target)
			}
		}
		tr := []string{}
		for _, c := range tertiary {
			if strings.HasPrefix(c.Target, "SyncE") {
				tr = append(tr, c.Target)
			}
		}
		require.Equal(t, syncETargets, p)
		require.Equal(t, withSuffix(syncETargets), tr)
	}
}

func TestExpandFrequencyUnknownSkipped(t *testing.T) {
	r := source.Ranking{
		{Name: source.GPS1PPS, WeightedPriority: 60},
		{Name: source.BITS, WeightedPriority: 50},
		{Name: "blah", WeightedPriority: 40},
		{Name: source.PTP, WeightedPriority: 30},
	}
	primary, tertiary := ExpandFrequency(r)
	require.Equal(t, []Command{
		{Unit: UnitPrimary, Target: "BITS", Priority: 1},
		{Unit: UnitPrimary, Target: "PTP-10MHz", Priority: 2},
	}, primary)
	require.Equal(t, []Command{
		{Unit: UnitTertiary, Target: "BITS-DPLL3", Priority: 1},
	}, tertiary)

	primary, tertiary = ExpandFrequency(nil)
	require.Empty(t, primary)
	require.Empty(t, tertiary)
}

func TestExpandOnePPS(t *testing.T) {
	r := source.Resolve(source.Ranking{
		{Name: source.GPS1PPS, WeightedPriority: 25},
		{Name: source.PTP1PPS, WeightedPriority: 40},
		{Name: source.SMA1PPS, WeightedPriority: 30},
		{Name: source.ToD1PPS, WeightedPriority: 20},
	})
	require.Equal(t, []Command{
		{Unit: UnitOnePPS, Target: source.PTP1PPS, Priority: 1},
		{Unit: UnitOnePPS, Target: source.SMA1PPS, Priority: 2},
		{Unit: UnitOnePPS, Target: source.GPS1PPS, Priority: 3},
		{Unit: UnitOnePPS, Target: source.ToD1PPS, Priority: 4},
	}, ExpandOnePPS(r))
	require.Empty(t, ExpandOnePPS(nil))
}

func TestExpand(t *testing.T) {
	d := source.Defaults()
	require.Equal(t, ExpandOnePPS(d[source.OnePPS]), Expand(source.OnePPS, d[source.OnePPS]))

	cmds := Expand(source.Frequency, d[source.Frequency])
	primary, tertiary := ExpandFrequency(d[source.Frequency])
	require.Equal(t, append(primary, tertiary...), cmds)

	require.Nil(t, Expand(source.Category(42), d[source.Frequency]))
}

func TestExpandDeterministic(t *testing.T) {
	r := source.Defaults()[source.Frequency]
	p1, t1 := ExpandFrequency(r)
	p2, t2 := ExpandFrequency(r)
	require.Equal(t, p1, p2)
	require.Equal(t, t1, t2)
}
