// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux
// +build !linux

package mtd

import (
	"fmt"
	"os"
	"runtime"
)

// Info is struct mtd_info_user from <mtd/mtd-abi.h>.
type Info struct {
	Type      uint8
	Flags     uint32
	Size      uint32
	EraseSize uint32
	WriteSize uint32
	OOBSize   uint32
}

// GetInfo is only supported on Linux.
func GetInfo(f *os.File) (*Info, error) {
	return nil, fmt.Errorf("MTD devices are not supported on %s", runtime.GOOS)
}
