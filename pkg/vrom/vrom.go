// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vrom brings up the VROM boot flash: it mirrors the host flash into
// the VROM, enables it, protects the flash descriptor regions on the eSPI
// flash channel and finally enables host boot.
//
// Every step must succeed before the next one starts. Register writes done
// by a failed run are not undone.
package vrom

import (
	"fmt"
	"os"

	"github.com/linuxboot/vrom/pkg/ifd"
	"github.com/linuxboot/vrom/pkg/log"
	"github.com/linuxboot/vrom/pkg/mtd"
	"github.com/linuxboot/vrom/pkg/platform"
	"github.com/linuxboot/vrom/pkg/prr"
	"github.com/linuxboot/vrom/pkg/sysfs"
)

// Config describes one bring-up run.
type Config struct {
	Layout platform.Layout
	// ReadAttempts bounds the retries of a short descriptor read.
	ReadAttempts int
}

// DefaultConfig returns the configuration used on the platform.
func DefaultConfig() Config {
	return Config{
		Layout:       platform.DefaultLayout("/"),
		ReadAttempts: ifd.DefaultReadAttempts,
	}
}

// ErrStep is a failure of one bring-up step.
type ErrStep struct {
	Step int
	Name string
	Err  error
}

func (err *ErrStep) Error() string {
	return fmt.Sprintf("step %d (%s): %v", err.Step, err.Name, err.Err)
}

func (err *ErrStep) Unwrap() error {
	return err.Err
}

type step struct {
	name string
	run  func() error
}

// state carries results between steps.
type state struct {
	cfg  Config
	desc *ifd.Descriptor
	used int
}

// Run performs the bring-up sequence described by cfg.
func Run(cfg Config) error {
	if err := cfg.Layout.Validate(); err != nil {
		return fmt.Errorf("invalid platform layout: %w", err)
	}
	s := &state{cfg: cfg}
	steps := []step{
		{"mirror host flash to VROM", s.mirror},
		{"enable VROM", s.enableVROM},
		{"read flash descriptor", s.readDescriptor},
		{"program protected range registers", s.programRanges},
		{"program range access protection", s.programAccessControl},
		{"enable flash channel", s.enableFlashChannel},
		{"enable host boot", s.enableHostBoot},
		{"set PCI subsystem and vendor id", s.setVendorID},
	}
	for i, st := range steps {
		if err := st.run(); err != nil {
			log.Errorf("Step %d (%s) failed: %v", i+1, st.name, err)
			return &ErrStep{Step: i + 1, Name: st.name, Err: err}
		}
	}
	return nil
}

func (s *state) mirror() error {
	return mtd.Mirror(s.cfg.Layout.HostMTD, s.cfg.Layout.VROMMTD)
}

func (s *state) enableVROM() error {
	if err := sysfs.NewRegister(s.cfg.Layout.VROMOffset).Update(platform.VROMEnable, sysfs.Merge); err != nil {
		return err
	}
	log.Infof("VROM is enabled")
	return nil
}

func (s *state) readDescriptor() error {
	d, err := ReadDescriptor(s.cfg.Layout.HostMTD, s.cfg.ReadAttempts)
	if err != nil {
		return err
	}
	log.Infof("Found valid flash signature 0x%08x, flash descriptor is valid", d.Signature)
	s.desc = d
	return nil
}

func (s *state) programRanges() error {
	used, err := prr.Program(s.desc, s.cfg.Layout.ProtectedRangeRegisters())
	if err != nil {
		return err
	}
	s.used = used
	return nil
}

func (s *state) programAccessControl() error {
	return prr.ProgramAccessControl(s.used, s.cfg.Layout.AccessControlRegister())
}

func (s *state) enableFlashChannel() error {
	return sysfs.NewRegister(s.cfg.Layout.ESPIConfig).Update(platform.FlashChannelConfigValid, sysfs.Merge)
}

func (s *state) enableHostBoot() error {
	return sysfs.NewRegister(s.cfg.Layout.HostBootEnable).Update(platform.HostBootEnable, sysfs.Overwrite)
}

func (s *state) setVendorID() error {
	return sysfs.NewRegister(s.cfg.Layout.PCIVendorID).Update(platform.PCIVendorID, sysfs.Overwrite)
}

// ReadDescriptor reads and validates the flash descriptor at the start of
// the flash at path.
func ReadDescriptor(path string, attempts int) (*ifd.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ifd.Read(f, attempts)
}

// Plan reads the descriptor from the host flash of cfg and returns the
// protected range assignments Run would program, touching nothing.
func Plan(cfg Config) ([]prr.Assignment, *ifd.Descriptor, error) {
	d, err := ReadDescriptor(cfg.Layout.HostMTD, cfg.ReadAttempts)
	if err != nil {
		return nil, nil, err
	}
	plan, err := prr.Plan(d)
	if err != nil {
		return nil, d, err
	}
	return plan, d, nil
}
