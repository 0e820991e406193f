// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ifd

import (
	"fmt"
)

const (
	// RegionBlockSize is the granularity of region base and limit values.
	RegionBlockSize = 0x1000

	// UnusedBase and UnusedLimit together mark a region table entry as unused.
	UnusedBase  = 0x7FFF
	UnusedLimit = 0x0000

	regionFieldMask  = 0x7FFF
	regionLimitShift = 16
)

// RegionType is the index of an entry in the descriptor region table.
type RegionType int

// Region table indices, as numbered by the hardware.
const (
	RegionTypeBIOS RegionType = iota
	RegionTypeME
	RegionTypeGBE
	RegionTypePD
	RegionTypeDevExp1
	RegionTypeBIOS2
	RegionTypeMicrocode
	RegionTypeEC
	RegionTypeDevExp2
	RegionTypeIE
	RegionTypeTGBE1
	RegionTypeTGBE2
	RegionTypeReserved1
	RegionTypeReserved2
	RegionTypePTT
	RegionTypeReserved3
)

var regionTypeNames = map[RegionType]string{
	RegionTypeBIOS:      "BIOS",
	RegionTypeME:        "ME",
	RegionTypeGBE:       "GbE",
	RegionTypePD:        "PD",
	RegionTypeDevExp1:   "DevExp1",
	RegionTypeBIOS2:     "BIOS2",
	RegionTypeMicrocode: "Microcode",
	RegionTypeEC:        "EC",
	RegionTypeDevExp2:   "DevExp2",
	RegionTypeIE:        "IE",
	RegionTypeTGBE1:     "10GbE1",
	RegionTypeTGBE2:     "10GbE2",
	RegionTypeReserved1: "Reserved1",
	RegionTypeReserved2: "Reserved2",
	RegionTypePTT:       "PTT",
	RegionTypeReserved3: "Reserved3",
}

func (rt RegionType) String() string {
	if s, ok := regionTypeNames[rt]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Region (%d)", int(rt))
}

// Region is a decoded region table entry. Base and Limit are 15-bit block
// indices; Limit is inclusive.
type Region struct {
	Base  uint16
	Limit uint16
}

// UnpackRegion decodes a packed region word. Bits 15 and 31 are reserved and
// dropped.
func UnpackRegion(word uint32) Region {
	return Region{
		Base:  uint16(word & regionFieldMask),
		Limit: uint16((word >> regionLimitShift) & regionFieldMask),
	}
}

// Pack encodes the region back into its table word with the reserved bits
// cleared.
func (r Region) Pack() uint32 {
	return uint32(r.Base)&regionFieldMask |
		(uint32(r.Limit)&regionFieldMask)<<regionLimitShift
}

// Used reports whether the entry describes a region. The pair
// (UnusedBase, UnusedLimit) is the only unused marker, so (0, 0) is used.
func (r Region) Used() bool {
	return !(r.Base == UnusedBase && r.Limit == UnusedLimit)
}

// ProtectionValue returns the eSPI flash channel protected range register
// value for the region: base in bits [15:0], exclusive limit in [31:16].
func (r Region) ProtectionValue() uint32 {
	return uint32(r.Base)&0xFFFF | ((uint32(r.Limit)&0xFFFF)+1)<<16
}

// BaseOffset calculates the offset into the flash image where the Region begins
func (r Region) BaseOffset() uint64 {
	return uint64(r.Base) * RegionBlockSize
}

// EndOffset calculates the offset into the flash image where the Region ends
func (r Region) EndOffset() uint64 {
	return (uint64(r.Limit) + 1) * RegionBlockSize
}

func (r Region) String() string {
	if !r.Used() {
		return "[unused]"
	}
	return fmt.Sprintf("[%#x, %#x]", r.Base, r.Limit)
}
