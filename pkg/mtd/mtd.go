// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mtd mirrors one MTD flash partition onto another.
package mtd

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/vrom/pkg/log"
)

// BlockSize is the unit the mirror copies in.
const BlockSize = 512

// Size returns the size of an MTD character device, or of a regular file
// standing in for one.
func Size(f *os.File) (uint64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if fi.Mode().IsRegular() {
		return uint64(fi.Size()), nil
	}
	info, err := GetInfo(f)
	if err != nil {
		return 0, fmt.Errorf("MEMGETINFO on %s: %w", f.Name(), err)
	}
	return uint64(info.Size), nil
}

// Mirror copies the whole content of src onto dst. Both must have the same
// size; nothing is written otherwise.
func Mirror(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	// dst is not truncated: its size is part of the precondition.
	out, err := os.OpenFile(dst, os.O_WRONLY, 0)
	if err != nil {
		in.Close()
		return err
	}
	defer func() {
		var closeErr *multierror.Error
		if cerr := in.Close(); cerr != nil {
			closeErr = multierror.Append(closeErr, cerr)
		}
		if cerr := out.Close(); cerr != nil {
			closeErr = multierror.Append(closeErr, cerr)
		}
		if closeErr == nil {
			return
		}
		if err != nil {
			err = multierror.Append(err, closeErr.Errors...)
			return
		}
		err = closeErr.ErrorOrNil()
	}()

	srcSize, err := Size(in)
	if err != nil {
		return err
	}
	dstSize, err := Size(out)
	if err != nil {
		return err
	}
	if srcSize != dstSize {
		return &ErrSizeMismatch{Src: src, SrcSize: srcSize, Dst: dst, DstSize: dstSize}
	}

	log.Infof("Copying %s (%s) from %s to %s", humanize.IBytes(srcSize), humanize.Comma(int64(srcSize)), src, dst)
	n, err := io.CopyBuffer(onlyWriter{out}, io.LimitReader(in, int64(srcSize)), make([]byte, BlockSize))
	if err != nil {
		return fmt.Errorf("error during copying flash content from %s to %s: %w", src, dst, err)
	}
	if uint64(n) != srcSize {
		return &ErrShortCopy{Src: src, Copied: uint64(n), Size: srcSize}
	}
	return nil
}

// onlyWriter hides ReadFrom so that io.CopyBuffer honours BlockSize.
type onlyWriter struct {
	io.Writer
}
