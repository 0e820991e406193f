// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ifd decodes the flash descriptor found at the start of the host
// boot flash.
package ifd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/linuxboot/vrom/pkg/log"
)

const (
	// Signature is the value a valid descriptor carries at SignatureOffset.
	Signature = 0x0FF0A55A
	// SignatureOffset is the offset of the signature within the descriptor.
	SignatureOffset = 0x10
	// RegionTableOffset is the offset of the region table within the
	// descriptor.
	RegionTableOffset = 0x40
	// NumRegions is the number of entries in the region table.
	NumRegions = 16
	// Size is the number of bytes read from the flash to decode a descriptor.
	Size = RegionTableOffset + NumRegions*4

	// DefaultReadAttempts bounds how many times Read retries a short read.
	DefaultReadAttempts = 8
)

// rawDescriptor mirrors the on-flash layout.
type rawDescriptor struct {
	_         [16]byte
	Signature uint32
	_         [3]uint32
	_         [16]byte
	_         uint32
	_         [12]byte
	Regions   [NumRegions]uint32
}

// Descriptor is a validated flash descriptor.
type Descriptor struct {
	Signature uint32
	// Regions is indexed by RegionType; the order is the hardware numbering.
	Regions [NumRegions]Region
}

// Parse validates and decodes a descriptor from the first Size bytes of buf.
func Parse(buf []byte) (*Descriptor, error) {
	if len(buf) < Size {
		return nil, &ErrShortDescriptor{Length: len(buf)}
	}
	var raw rawDescriptor
	if err := binary.Read(bytes.NewReader(buf[:Size]), binary.LittleEndian, &raw); err != nil {
		return nil, err
	}
	if raw.Signature != Signature {
		return nil, &ErrInvalidSignature{Signature: raw.Signature}
	}

	d := Descriptor{Signature: raw.Signature}
	for i, word := range raw.Regions {
		d.Regions[i] = UnpackRegion(word)
	}
	return &d, nil
}

// Read reads exactly Size bytes from the start of r and parses them. A short
// read is retried from offset 0 up to maxAttempts times (DefaultReadAttempts
// if maxAttempts is not positive). Reading nothing at all, or any other I/O
// error, fails immediately.
func Read(r io.ReadSeeker, maxAttempts int) (*Descriptor, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultReadAttempts
	}

	buf := make([]byte, Size)
	var n int
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("unable to seek to the flash descriptor: %w", err)
		}
		var err error
		n, err = io.ReadFull(r, buf)
		switch {
		case err == nil:
			return Parse(buf)
		case errors.Is(err, io.ErrUnexpectedEOF):
			log.Warnf("Short read of flash descriptor (%d of %d bytes), attempt %d of %d", n, Size, attempt, maxAttempts)
			continue
		default:
			return nil, fmt.Errorf("unable to read the flash descriptor: %w", err)
		}
	}
	return nil, &ErrShortRead{Attempts: maxAttempts, Got: n}
}

// Bytes encodes the descriptor in its on-flash layout. Reserved areas are
// zero.
func (d *Descriptor) Bytes() []byte {
	raw := rawDescriptor{Signature: d.Signature}
	for i, r := range d.Regions {
		raw.Regions[i] = r.Pack()
	}
	var buf bytes.Buffer
	// Writing a fixed-size struct to a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, &raw)
	return buf.Bytes()
}

// UsedCount returns the number of used entries in the region table.
func (d *Descriptor) UsedCount() int {
	var n int
	for _, r := range d.Regions {
		if r.Used() {
			n++
		}
	}
	return n
}

// NewDescriptor returns a descriptor with a valid signature and every region
// marked unused.
func NewDescriptor() *Descriptor {
	d := &Descriptor{Signature: Signature}
	for i := range d.Regions {
		d.Regions[i] = Region{Base: UnusedBase, Limit: UnusedLimit}
	}
	return d
}
