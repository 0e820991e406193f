// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ifd

import "testing"

var regionTestcases = [...]struct {
	word  uint32
	in    Region
	used  bool
	value uint32
	base  uint64
	end   uint64
}{
	// Unused sentinel
	{
		word:  0x00007FFF,
		in:    Region{0x7FFF, 0},
		used:  false,
		value: 0x00017FFF,
		base:  0x7FFF000,
		end:   0x1000,
	},
	// Zero pair is not the sentinel
	{
		word:  0x00000000,
		in:    Region{0, 0},
		used:  true,
		value: 0x00010000,
		base:  0,
		end:   0x1000,
	},
	{
		word:  0x00FF0000,
		in:    Region{0, 0xFF},
		used:  true,
		value: 0x01000000,
		base:  0,
		end:   0x100000,
	},
	{
		word:  0x0FFF0100,
		in:    Region{0x100, 0xFFF},
		used:  true,
		value: 0x10000100,
		base:  0x100000,
		end:   0x1000000,
	},
	{
		word:  0x7FFF7FFF,
		in:    Region{0x7FFF, 0x7FFF},
		used:  true,
		value: 0x80007FFF,
		base:  0x7FFF000,
		end:   0x8000000,
	},
	{
		word:  0x00017FFF,
		in:    Region{0x7FFF, 1},
		used:  true,
		value: 0x00027FFF,
		base:  0x7FFF000,
		end:   0x2000,
	},
}

func TestUnpackRegion(t *testing.T) {
	for _, tc := range regionTestcases {
		if out := UnpackRegion(tc.word); out != tc.in {
			t.Errorf("UnpackRegion(%#08x) = %#v; want = %#v", tc.word, out, tc.in)
		}
		if out := tc.in.Pack(); out != tc.word {
			t.Errorf("%#v.Pack() = %#08x; want = %#08x", tc.in, out, tc.word)
		}
	}
}

func TestUnpackRegionIgnoresReservedBits(t *testing.T) {
	r := UnpackRegion(0x80008000 | 0x00FF0010)
	if r != (Region{Base: 0x10, Limit: 0xFF}) {
		t.Errorf("reserved bits leaked into %#v", r)
	}
	if out := r.Pack(); out != 0x00FF0010 {
		t.Errorf("Pack() = %#08x; want reserved bits cleared", out)
	}
}

func TestRegionUsed(t *testing.T) {
	for _, tc := range regionTestcases {
		if out := tc.in.Used(); out != tc.used {
			t.Errorf("%#v.Used() = %v; want = %v", tc.in, out, tc.used)
		}
	}
}

func TestRegionProtectionValue(t *testing.T) {
	for _, tc := range regionTestcases {
		if out := tc.in.ProtectionValue(); out != tc.value {
			t.Errorf("%#v.ProtectionValue() = %#08x; want = %#08x", tc.in, out, tc.value)
		}
	}
}

func TestRegionOffsets(t *testing.T) {
	for _, tc := range regionTestcases {
		if out := tc.in.BaseOffset(); out != tc.base {
			t.Errorf("%#v.BaseOffset() = %#x; want = %#x", tc.in, out, tc.base)
		}
		if out := tc.in.EndOffset(); out != tc.end {
			t.Errorf("%#v.EndOffset() = %#x; want = %#x", tc.in, out, tc.end)
		}
	}
}

func TestRegionTypeString(t *testing.T) {
	if s := RegionTypeBIOS.String(); s != "BIOS" {
		t.Errorf("RegionTypeBIOS.String() = %q", s)
	}
	if s := RegionType(16).String(); s != "Unknown Region (16)" {
		t.Errorf("RegionType(16).String() = %q", s)
	}
}
