// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sysfs reads and writes 32-bit SoC registers exposed as text
// attributes holding "0x"-prefixed hex values.
package sysfs

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/linuxboot/vrom/pkg/log"
)

// maxValueLen bounds how much of an attribute is read.
const maxValueLen = 16

// Mode selects how Update combines the new value with the register.
type Mode int

const (
	// Merge ORs the new value into the current register value.
	Merge Mode = iota
	// Overwrite replaces the register value.
	Overwrite
)

func (m Mode) String() string {
	switch m {
	case Merge:
		return "merge"
	case Overwrite:
		return "overwrite"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Register is a register attribute file.
type Register struct {
	Path string
	// Wide registers are written zero-padded to eight hex digits.
	Wide bool
}

// NewRegister returns the register at path.
func NewRegister(path string) *Register {
	return &Register{Path: path}
}

func (r *Register) String() string {
	return r.Path
}

func (r *Register) format(value uint32) string {
	if r.Wide {
		return fmt.Sprintf("0x%08x", value)
	}
	return fmt.Sprintf("0x%x", value)
}

// Read returns the current register value. The first two characters of the
// attribute are the "0x" prefix and are skipped.
func (r *Register) Read() (uint32, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return 0, &ErrRegister{Path: r.Path, Op: "open", Err: err}
	}
	defer f.Close()

	buf := make([]byte, maxValueLen)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return 0, &ErrRegister{Path: r.Path, Op: "read", Err: err}
	}
	return r.parse(string(buf[:n]))
}

func (r *Register) parse(s string) (uint32, error) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) < 3 {
		return 0, &ErrRegister{Path: r.Path, Op: "parse", Err: fmt.Errorf("value %q is too short", s)}
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s[2:]), 16, 32)
	if err != nil {
		return 0, &ErrRegister{Path: r.Path, Op: "parse", Err: err}
	}
	return uint32(v), nil
}

// Write replaces the register content with value.
func (r *Register) Write(value uint32) error {
	f, err := os.OpenFile(r.Path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return &ErrRegister{Path: r.Path, Op: "open", Err: err}
	}
	if _, err := io.WriteString(f, r.format(value)); err != nil {
		f.Close()
		return &ErrRegister{Path: r.Path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &ErrRegister{Path: r.Path, Op: "close", Err: err}
	}
	return nil
}

// Update writes value to the register. In Merge mode the current value is
// read first and value is ORed into it.
func (r *Register) Update(value uint32, mode Mode) error {
	var prev uint32
	if mode == Merge {
		var err error
		if prev, err = r.Read(); err != nil {
			return err
		}
	}
	next := prev | value
	log.Infof("Updating %s from %#x to %s", r.Path, prev, r.format(next))
	return r.Write(next)
}
