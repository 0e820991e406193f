// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ifd

import (
	"fmt"
)

// ErrInvalidSignature means the descriptor signature is not Signature.
type ErrInvalidSignature struct {
	Signature uint32
}

func (err *ErrInvalidSignature) Error() string {
	return fmt.Sprintf("invalid flash descriptor signature: 0x%08x (expected 0x%08x)",
		err.Signature, uint32(Signature))
}

// ErrShortDescriptor means the buffer cannot hold a whole descriptor.
type ErrShortDescriptor struct {
	Length int
}

func (err *ErrShortDescriptor) Error() string {
	return fmt.Sprintf("flash descriptor size too small: expected %d bytes, got %d",
		Size, err.Length)
}

// ErrShortRead means every read attempt returned less than a whole
// descriptor.
type ErrShortRead struct {
	Attempts int
	Got      int
}

func (err *ErrShortRead) Error() string {
	return fmt.Sprintf("short read of flash descriptor after %d attempts: got %d of %d bytes",
		err.Attempts, err.Got, Size)
}
