// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prr assigns used flash descriptor regions to the eSPI flash
// channel protected range registers (ESPIFCPRR) and derives the range access
// protection register (ESPIFCRAP) value.
//
// eSPI flash channel protected range register:
//
//	[15:0]  region base
//	[31:16] region limit (exclusive)
package prr

import (
	"github.com/linuxboot/vrom/pkg/ifd"
	"github.com/linuxboot/vrom/pkg/log"
)

const (
	// MaxSlots is the number of protected range registers.
	MaxSlots = 8

	accessControlLowNibble = 0xF
	accessControlSlotShift = 16
)

// Assignment is one used region bound to a protected range register slot.
type Assignment struct {
	Region ifd.RegionType
	Slot   int
	Value  uint32
}

// Cursor hands out protected range register slots strictly in order.
type Cursor struct {
	capacity int
	next     int
}

// NewCursor returns a cursor over capacity slots.
func NewCursor(capacity int) *Cursor {
	return &Cursor{capacity: capacity}
}

// Next returns the next free slot, or false if every slot is taken.
func (c *Cursor) Next() (int, bool) {
	if c.next >= c.capacity {
		return 0, false
	}
	slot := c.next
	c.next++
	return slot, true
}

// Used returns how many slots were handed out.
func (c *Cursor) Used() int {
	return c.next
}

// Assign walks the region table in index order and calls emit for each used
// region with the next slot taken from c. It stops before emitting a region
// that no slot is left for, and reports ErrNoUsedRegions if the table has no
// used region at all. Emits that already happened are not undone on error.
func Assign(d *ifd.Descriptor, c *Cursor, emit func(Assignment) error) (int, error) {
	for i, r := range d.Regions {
		rt := ifd.RegionType(i)
		if !r.Used() {
			log.Infof("Flash descriptor region %d (%s) is not used", i, rt)
			continue
		}
		log.Infof("Flash descriptor region %d (%s) is used, region base: %#x and region limit: %#x",
			i, rt, r.Base, r.Limit)

		slot, ok := c.Next()
		if !ok {
			return c.Used(), &ErrCapacityExceeded{Region: rt, Capacity: c.capacity}
		}
		a := Assignment{Region: rt, Slot: slot, Value: r.ProtectionValue()}
		if err := emit(a); err != nil {
			return c.Used(), err
		}
	}
	if c.Used() == 0 {
		return 0, ErrNoUsedRegions
	}
	return c.Used(), nil
}

// Plan returns the assignments for d without any side effect.
func Plan(d *ifd.Descriptor) ([]Assignment, error) {
	var plan []Assignment
	_, err := Assign(d, NewCursor(MaxSlots), func(a Assignment) error {
		plan = append(plan, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// AccessControlValue returns the range access protection value marking the
// first used slots as valid.
func AccessControlValue(used int) uint32 {
	return (uint32(1)<<uint(used)-1)<<accessControlSlotShift | accessControlLowNibble
}
