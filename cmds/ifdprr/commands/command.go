// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/vrom/pkg/ifd"
)

// Command is an interface of implementations of verbs
// (like "show" or "plan" of "ifdprr show"/"ifdprr plan").
type Command interface {
	flags.Commander

	// ShortDescription explains what this command does in one line
	ShortDescription() string

	// LongDescription explains what this verb does (without limitation in amount of lines)
	LongDescription() string
}

// ImageOptions are the options shared by the verbs reading a flash image.
type ImageOptions struct {
	ImagePath    string `short:"f" long:"image" description:"path to the flash image or MTD device" required:"true"`
	ReadAttempts int    `long:"read-attempts" description:"maximum number of flash descriptor reads (0 for the built-in limit)"`
}

// ReadDescriptor opens the image and decodes its flash descriptor.
func (opts *ImageOptions) ReadDescriptor() (*ifd.Descriptor, error) {
	f, err := os.Open(opts.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("unable to open the flash image '%s': %w", opts.ImagePath, err)
	}
	defer f.Close()

	d, err := ifd.Read(f, opts.ReadAttempts)
	if err != nil {
		return nil, fmt.Errorf("unable to decode the flash descriptor of '%s': %w", opts.ImagePath, err)
	}
	return d, nil
}
