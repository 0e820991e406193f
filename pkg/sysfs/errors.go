// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sysfs

import (
	"fmt"
)

// ErrRegister is an access failure on a register attribute.
type ErrRegister struct {
	Path string
	Op   string
	Err  error
}

func (err *ErrRegister) Error() string {
	return fmt.Sprintf("unable to %s register %s: %v", err.Op, err.Path, err.Err)
}

func (err *ErrRegister) Unwrap() error {
	return err.Err
}
