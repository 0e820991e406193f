// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mtd

import (
	"fmt"
)

// ErrSizeMismatch means the mirrored partitions differ in size.
type ErrSizeMismatch struct {
	Src     string
	SrcSize uint64
	Dst     string
	DstSize uint64
}

func (err *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("MTD partition size mismatch: %s is %#x bytes, %s is %#x bytes",
		err.Src, err.SrcSize, err.Dst, err.DstSize)
}

// ErrShortCopy means the source ended before its reported size.
type ErrShortCopy struct {
	Src    string
	Copied uint64
	Size   uint64
}

func (err *ErrShortCopy) Error() string {
	return fmt.Sprintf("short read from %s: copied %#x of %#x bytes", err.Src, err.Copied, err.Size)
}
