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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type staticCounters map[string]int64

func (s staticCounters) Counters() map[string]int64 {
	return s
}

func TestFlattenKey(t *testing.T) {
	require.Equal(t, "timingsrc_set_rejected_one_pps", flattenKey("set.rejected.one-pps"))
	require.Equal(t, "timingsrc_a_b_c_d", flattenKey("a b=c/d"))
}

func TestPrometheusExporterScrape(t *testing.T) {
	src := staticCounters{"commands.dpll2": 8, "tod_output": 1}
	e := NewPrometheusExporter(src, 0, time.Second)

	e.scrapeMetrics()
	src["commands.dpll2"] = 16
	// second scrape reuses registered gauges
	e.scrapeMetrics()

	mfs, err := e.registry.Gather()
	require.NoError(t, err)
	got := map[string]float64{}
	for _, mf := range mfs {
		got[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
	}
	require.Equal(t, map[string]float64{
		"timingsrc_commands_dpll2": 16,
		"timingsrc_tod_output":     1,
	}, got)
}
