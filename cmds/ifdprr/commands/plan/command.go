// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"io"
	"os"

	"github.com/linuxboot/vrom/cmds/ifdprr/commands"
	"github.com/linuxboot/vrom/pkg/prr"
	"github.com/linuxboot/vrom/pkg/report"
)

var _ commands.Command = (*Command)(nil)

// Command prints the protected range registers derived from an image.
type Command struct {
	commands.ImageOptions

	out io.Writer
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the eSPI flash channel protection registers"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Assigns the used flash descriptor regions to the protected range registers in table order and prints the register values, including the range access protection register, that safs-vrom would program."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.CheckNoArgs(args); err != nil {
		return err
	}
	d, err := cmd.ReadDescriptor()
	if err != nil {
		return err
	}
	p, err := prr.Plan(d)
	if err != nil {
		return err
	}
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	report.Plan(out, p)
	return nil
}
