// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ifdprr inspects the flash descriptor of a host flash image offline.
//
// Synopsis:
//
//	ifdprr show -f IMAGE
//	ifdprr plan -f IMAGE
//
// Description:
//
//	show: Print the descriptor region table
//	plan: Print the protected range and range access protection register values
package main

import (
	"log"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/vrom/cmds/ifdprr/commands"
	"github.com/linuxboot/vrom/cmds/ifdprr/commands/plan"
	"github.com/linuxboot/vrom/cmds/ifdprr/commands/show"
)

var (
	knownCommands = map[string]commands.Command{
		"show": &show.Command{},
		"plan": &plan.Command{},
	}
)

func main() {
	flagsParser := flags.NewParser(nil, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		log.Fatal(err)
	}
}
