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

package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/netclock/timingsrc/dpll"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	color.NoColor = true
}

const onePPSRequest = `{"vyatta-system-v1:system":{"vyatta-system-timing-v1:timing":{
	"timing-source":{"one-pps":{"gps-1pps":{"weighted-priority":25}}}}}}`

func TestPlanRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, planRun(&out, []byte(onePPSRequest)))
	s := out.String()
	require.Contains(t, s, "PTP-1PPS")
	require.Contains(t, s, "ToD-1PPS")
	require.Contains(t, s, "tod-output: false")
	require.Contains(t, s, "dpll1")
	// frequency isn't in the request so nothing is sent to dpll2
	require.NotContains(t, s, "dpll2")
}

func TestPlanRunRejected(t *testing.T) {
	var out bytes.Buffer
	err := planRun(&out, []byte(`{"foo":{}}`))
	require.ErrorContains(t, err, "missing container")
	require.Empty(t, out.String())
}

func TestApplyRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := dpll.NewMockDriver(ctrl)
	gomock.InOrder(
		d.EXPECT().SetOnePPSPriority("PTP-1PPS", 1).Return(nil),
		d.EXPECT().SetOnePPSPriority("SMA-1PPS", 2).Return(errors.New("boom")),
		d.EXPECT().SetOnePPSPriority("GPS-1PPS", 3).Return(nil),
		d.EXPECT().SetOnePPSPriority("ToD-1PPS", 4).Return(nil),
		d.EXPECT().SetTimeOfDayOutput(false).Return(nil),
	)
	var out bytes.Buffer
	err := applyRun(&out, []byte(onePPSRequest), d)
	require.EqualError(t, err, "1 commands failed")
	require.Contains(t, out.String(), "GPS-1PPS")
}

func TestStateRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	d := dpll.NewMockDriver(ctrl)
	d.EXPECT().UnitStatus(dpll.UnitOnePPS).Return(nil, errors.New("boom"))
	d.EXPECT().UnitStatus(dpll.UnitPrimary).Return(&dpll.HardwareStatus{
		Current:        "SyncE-BCM82780-10G",
		LockState:      "Phase locked",
		OperatingState: "Locked",
	}, nil)

	var out bytes.Buffer
	require.NoError(t, stateRun(&out, d))
	s := out.String()
	require.Contains(t, s, "None")
	require.Contains(t, s, "SyncE-BCM82780-10G")
	require.Contains(t, s, "SYNCE")
	require.Contains(t, s, "Locked")
}

func TestCheckRun(t *testing.T) {
	var out bytes.Buffer
	require.True(t, checkRun(&out, []byte(onePPSRequest)).Accepted())
	require.Equal(t, "Accepted\n", out.String())

	out.Reset()
	res := checkRun(&out, []byte(`{"vyatta-system-v1:system":{}}`))
	require.False(t, res.Accepted())
	require.Equal(t, "Rejected\n\tmodule: timing-source\n\tmessage: missing container\n\tpath: /vyatta-system-v1:system/vyatta-system-timing-v1:timing\n", out.String())
}
