// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/vrom/pkg/ifd"
	"github.com/linuxboot/vrom/pkg/prr"
)

func sampleDescriptor() *ifd.Descriptor {
	d := ifd.NewDescriptor()
	d.Regions[ifd.RegionTypeBIOS] = ifd.Region{Base: 0x100, Limit: 0xFFF}
	d.Regions[ifd.RegionTypeME] = ifd.Region{Base: 0x3, Limit: 0xFF}
	return d
}

func TestRegions(t *testing.T) {
	var buf bytes.Buffer
	Regions(&buf, sampleDescriptor())

	out := buf.String()
	assert.Contains(t, out, "BIOS")
	assert.Contains(t, out, "| 0x0100 | 0x0fff | 0x00100000 | 0x01000000 | 15 MiB")
	assert.Contains(t, out, "| 0x0003 | 0x00ff | 0x00003000 | 0x00100000 | 1012 KiB")
	assert.Contains(t, out, "15 MiB")
	assert.Contains(t, out, "PTT")
}

func TestPlan(t *testing.T) {
	plan, err := prr.Plan(sampleDescriptor())
	require.NoError(t, err)

	var buf bytes.Buffer
	Plan(&buf, plan)

	out := buf.String()
	assert.Contains(t, out, "0x10000100")
	assert.Contains(t, out, "0x01000003")
	assert.Contains(t, out, "0x0003000f")
}
