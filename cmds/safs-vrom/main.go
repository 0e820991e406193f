// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// safs-vrom brings up the VROM at boot: it copies the host flash into the
// VROM, enables it, programs the eSPI flash channel protected ranges from
// the host flash descriptor and enables host boot.
//
// Synopsis:
//
//	safs-vrom [--root DIR] [--host-mtd PATH] [--vrom-mtd PATH] [--read-attempts N] [--dry-run]
//
// Run without arguments on the platform. --dry-run only reads the flash
// descriptor and prints the registers that would be programmed.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/linuxboot/vrom/pkg/ifd"
	"github.com/linuxboot/vrom/pkg/log"
	"github.com/linuxboot/vrom/pkg/platform"
	"github.com/linuxboot/vrom/pkg/report"
	"github.com/linuxboot/vrom/pkg/vrom"
)

type options struct {
	root         string
	hostMTD      string
	vromMTD      string
	readAttempts int
	dryRun       bool
}

func (opts options) config() vrom.Config {
	cfg := vrom.Config{
		Layout:       platform.DefaultLayout(opts.root),
		ReadAttempts: opts.readAttempts,
	}
	cfg.Layout.HostMTD = filepath.Join(opts.root, opts.hostMTD)
	cfg.Layout.VROMMTD = filepath.Join(opts.root, opts.vromMTD)
	return cfg
}

func run(opts options, args []string, out io.Writer) error {
	if len(args) != 0 {
		return fmt.Errorf("unexpected arguments %v; usage: safs-vrom [flags]", args)
	}
	cfg := opts.config()

	if opts.dryRun {
		plan, desc, err := vrom.Plan(cfg)
		if desc != nil {
			report.Regions(out, desc)
		}
		if err != nil {
			return err
		}
		report.Plan(out, plan)
		return nil
	}

	if err := vrom.Run(cfg); err != nil {
		return err
	}
	log.Infof("VROM bring-up complete")
	return nil
}

func main() {
	var opts options
	flag.StringVar(&opts.root, "root", "/", "directory the device and register paths are relative to")
	flag.StringVar(&opts.hostMTD, "host-mtd", platform.HostMTD, "host flash MTD device, relative to --root")
	flag.StringVar(&opts.vromMTD, "vrom-mtd", platform.VROMMTD, "VROM MTD device, relative to --root")
	flag.IntVar(&opts.readAttempts, "read-attempts", ifd.DefaultReadAttempts, "maximum number of flash descriptor reads")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "print the protected range plan and do not touch any device")
	flag.Parse()

	if err := run(opts, flag.Args(), os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}
}
