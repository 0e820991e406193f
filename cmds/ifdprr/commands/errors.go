// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
)

// ErrArgs means arguments are invalid
type ErrArgs struct {
	Err error
}

func (err ErrArgs) Error() string {
	return fmt.Sprintf("invalid arguments: %v", err.Err)
}

func (err ErrArgs) Unwrap() error {
	return err.Err
}

// CheckNoArgs returns ErrArgs if any positional argument is left.
func CheckNoArgs(args []string) error {
	if len(args) != 0 {
		return ErrArgs{Err: fmt.Errorf("there are extra arguments: %v", args)}
	}
	return nil
}
