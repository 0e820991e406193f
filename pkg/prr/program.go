// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prr

import (
	"fmt"

	"github.com/linuxboot/vrom/pkg/ifd"
)

// Writer stores a value into a hardware register.
type Writer interface {
	Write(value uint32) error
}

// Program assigns the used regions of d to slots, in slot order, writing each
// value as soon as it is assigned. It returns the number of slots written.
func Program(d *ifd.Descriptor, slots []Writer) (int, error) {
	return Assign(d, NewCursor(len(slots)), func(a Assignment) error {
		if err := slots[a.Slot].Write(a.Value); err != nil {
			return fmt.Errorf("unable to program protected range register %d for region %s: %w",
				a.Slot, a.Region, err)
		}
		return nil
	})
}

// ProgramAccessControl writes the range access protection value for used
// slots to rap.
func ProgramAccessControl(used int, rap Writer) error {
	if used <= 0 {
		return ErrNoUsedRegions
	}
	if used > MaxSlots {
		return &ErrCapacityExceeded{Region: -1, Capacity: MaxSlots}
	}
	if err := rap.Write(AccessControlValue(used)); err != nil {
		return fmt.Errorf("unable to program range access protection register: %w", err)
	}
	return nil
}
