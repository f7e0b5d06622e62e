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

package source

// Canonical names of the one-pps references
const (
	GPS1PPS = "GPS-1PPS"
	PTP1PPS = "PTP-1PPS"
	SMA1PPS = "SMA-1PPS"
	ToD1PPS = "ToD-1PPS"
)

// Canonical names of the frequency references
const (
	GPS   = "GPS"
	SyncE = "SYNCE"
	PTP   = "PTP"
	SMA   = "SMA"
	BITS  = "BITS"
)

var defaults = map[Category]Ranking{
	OnePPS: {
		{Name: GPS1PPS, WeightedPriority: 50},
		{Name: PTP1PPS, WeightedPriority: 40},
		{Name: SMA1PPS, WeightedPriority: 30},
		{Name: ToD1PPS, WeightedPriority: 20},
	},
	Frequency: {
		{Name: GPS, WeightedPriority: 50},
		{Name: SyncE, WeightedPriority: 40},
		{Name: PTP, WeightedPriority: 30},
		{Name: SMA, WeightedPriority: 20},
		{Name: BITS, WeightedPriority: 10},
	},
}

// Defaults returns a fresh copy of the built-in universe of sources
func Defaults() map[Category]Ranking {
	res := make(map[Category]Ranking, len(defaults))
	for c, r := range defaults {
		res[c] = r.Clone()
	}
	return res
}
