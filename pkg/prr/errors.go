// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prr

import (
	"errors"
	"fmt"

	"github.com/linuxboot/vrom/pkg/ifd"
)

// ErrNoUsedRegions means the descriptor marks every region as unused.
var ErrNoUsedRegions = errors.New("none of the flash descriptor regions are used")

// ErrCapacityExceeded means there are more used regions than protected range
// registers.
type ErrCapacityExceeded struct {
	// Region is the first region left without a slot, or -1 if unknown.
	Region   ifd.RegionType
	Capacity int
}

func (err *ErrCapacityExceeded) Error() string {
	if err.Region < 0 {
		return fmt.Sprintf("all %d protected range registers are already being used", err.Capacity)
	}
	return fmt.Sprintf("all %d protected range registers are already being used, region %d (%s) cannot be protected",
		err.Capacity, int(err.Region), err.Region)
}
