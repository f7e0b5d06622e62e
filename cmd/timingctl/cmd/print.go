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
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/netclock/timingsrc/dpll"
	"github.com/netclock/timingsrc/source"
	"github.com/netclock/timingsrc/timing"
	"github.com/olekukonko/tablewriter"
)

func colorSource(name string) string {
	if name == dpll.None {
		return color.RedString(name)
	}
	return color.GreenString(name)
}

func printRankings(w io.Writer, snap *timing.Snapshot) error {
	table := tablewriter.NewWriter(w)
	table.Header("category", "rank", "source", "weighted priority")
	for _, c := range source.Categories {
		for i, s := range snap.Ranking(c) {
			if err := table.Append([]string{c.String(), fmt.Sprint(i + 1), s.Name, fmt.Sprint(s.WeightedPriority)}); err != nil {
				return err
			}
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "tod-output: %t\n", snap.TODOutput)
	return nil
}

func printCommands(w io.Writer, cmds []dpll.Command) error {
	table := tablewriter.NewWriter(w)
	table.Header("unit", "target", "priority")
	for _, c := range cmds {
		if err := table.Append([]string{c.Unit.String(), c.Target, fmt.Sprint(c.Priority)}); err != nil {
			return err
		}
	}
	return table.Render()
}

// unitStatus is a status of one reporting unit
type unitStatus struct {
	category source.Category
	unit     dpll.Unit
	hw       *dpll.HardwareStatus
}

func printStatus(w io.Writer, rows []unitStatus) error {
	table := tablewriter.NewWriter(w)
	table.Header("category", "unit", "input", "source", "lock", "operating status")
	for _, r := range rows {
		val := []string{r.category.String(), r.unit.String()}
		if r.hw == nil {
			val = append(val, "", colorSource(dpll.None), "", "")
		} else {
			val = append(val,
				r.hw.Current,
				colorSource(dpll.SourceName(r.unit, r.hw.Current)),
				r.hw.LockState,
				r.hw.OperatingState,
			)
		}
		if err := table.Append(val); err != nil {
			return err
		}
	}
	return table.Render()
}

func printCheck(w io.Writer, res timing.CheckResult) {
	if res.Accepted() {
		fmt.Fprintln(w, color.GreenString("Accepted"))
		return
	}
	fmt.Fprintf(w, "%s\n\tmodule: %s\n\tmessage: %s\n\tpath: %s\n",
		color.RedString("Rejected"), res.Fault.Module, res.Fault.Message, res.Fault.Path)
}
