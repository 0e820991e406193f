// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders flash descriptor regions and protected range
// register plans as text tables.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/linuxboot/vrom/pkg/ifd"
	"github.com/linuxboot/vrom/pkg/prr"
)

// Regions writes the region table of d to w.
func Regions(w io.Writer, d *ifd.Descriptor) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Flash descriptor regions")
	t.AppendHeader(table.Row{"#", "Region", "Base", "Limit", "Offset", "End", "Size", "Used"})
	for i, r := range d.Regions {
		rt := ifd.RegionType(i)
		if !r.Used() {
			t.AppendRow(table.Row{i, rt, "-", "-", "-", "-", "-", "no"})
			continue
		}
		var size string
		if r.EndOffset() > r.BaseOffset() {
			size = humanize.IBytes(r.EndOffset() - r.BaseOffset())
		} else {
			size = "empty"
		}
		t.AppendRow(table.Row{
			i, rt,
			fmt.Sprintf("0x%04x", r.Base),
			fmt.Sprintf("0x%04x", r.Limit),
			fmt.Sprintf("0x%08x", r.BaseOffset()),
			fmt.Sprintf("0x%08x", r.EndOffset()),
			size,
			"yes",
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Used", d.UsedCount()})
	t.Render()
}

// Plan writes the protected range register assignments and the resulting
// range access protection value to w.
func Plan(w io.Writer, plan []prr.Assignment) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("eSPI flash channel protection")
	t.AppendHeader(table.Row{"Register", "Region", "Value"})
	for _, a := range plan {
		t.AppendRow(table.Row{
			fmt.Sprintf("ESPIFCPRR%d", a.Slot),
			fmt.Sprintf("%d (%s)", int(a.Region), a.Region),
			fmt.Sprintf("0x%08x", a.Value),
		})
	}
	if len(plan) > 0 {
		t.AppendSeparator()
		t.AppendRow(table.Row{"ESPIFCRAP0", fmt.Sprintf("%d slots", len(plan)), fmt.Sprintf("0x%08x", prr.AccessControlValue(len(plan)))})
	}
	t.Render()
}
