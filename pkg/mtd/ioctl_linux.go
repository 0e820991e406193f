// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mtd

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// memGetInfo is MEMGETINFO, _IOR('M', 1, struct mtd_info_user).
const memGetInfo = 0x80204d01

// Info is struct mtd_info_user from <mtd/mtd-abi.h>.
type Info struct {
	Type      uint8
	_         [3]uint8
	Flags     uint32
	Size      uint32
	EraseSize uint32
	WriteSize uint32
	OOBSize   uint32
	_         uint64
}

// GetInfo issues MEMGETINFO on an MTD character device.
func GetInfo(f *os.File) (*Info, error) {
	var info Info
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), memGetInfo, uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return nil, errno
	}
	return &info, nil
}
