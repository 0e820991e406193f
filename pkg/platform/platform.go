// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform holds the fixed device and register locations of the
// SoC the VROM is brought up on.
package platform

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/vrom/pkg/prr"
	"github.com/linuxboot/vrom/pkg/sysfs"
)

// Register locations.
const (
	RegListDir = "/sys/class/soc/kw_reg_list"
	Fn2Dir     = "/sys/class/soc/fn2"

	HostMTD = "/dev/mtd/by-name/host-prime"
	VROMMTD = "/dev/mtd/by-name/vrom-prime"
)

// Register values.
const (
	// VROMEnable is the VROM enable bit of vromoff.
	VROMEnable = 1 << 3
	// FlashChannelConfigValid is FCCFGVALID in espigcfg.
	FlashChannelConfigValid = 1 << 16
	// HostBootEnable is written to fn2_host_boot_en.
	HostBootEnable = 1
	// PCIVendorID is the subsystem and vendor id written to fn2_pci_vendor.
	PCIVendorID = 0x03d91590
)

// Layout names every device and register the bring-up touches.
type Layout struct {
	HostMTD string
	VROMMTD string

	VROMOffset     string
	ProtectedRange [prr.MaxSlots]string
	AccessControl  string
	ESPIConfig     string
	HostBootEnable string
	PCIVendorID    string
}

// DefaultLayout returns the platform layout with every path placed under
// root.
func DefaultLayout(root string) Layout {
	l := Layout{
		HostMTD:        filepath.Join(root, HostMTD),
		VROMMTD:        filepath.Join(root, VROMMTD),
		VROMOffset:     filepath.Join(root, RegListDir, "vromoff"),
		AccessControl:  filepath.Join(root, RegListDir, "espifcrap0"),
		ESPIConfig:     filepath.Join(root, RegListDir, "espigcfg"),
		HostBootEnable: filepath.Join(root, Fn2Dir, "fn2_host_boot_en"),
		PCIVendorID:    filepath.Join(root, Fn2Dir, "fn2_pci_vendor"),
	}
	for i := range l.ProtectedRange {
		l.ProtectedRange[i] = filepath.Join(root, RegListDir, fmt.Sprintf("espifcprr%d", i))
	}
	return l
}

// Validate checks that every location is set and that no two registers
// share a path.
func (l Layout) Validate() error {
	var result *multierror.Error
	seen := map[string]string{}
	check := func(name, path string) {
		if path == "" {
			result = multierror.Append(result, fmt.Errorf("%s: path is not set", name))
			return
		}
		if other, ok := seen[path]; ok {
			result = multierror.Append(result, fmt.Errorf("%s: path %s is already used by %s", name, path, other))
			return
		}
		seen[path] = name
	}

	check("host MTD", l.HostMTD)
	check("VROM MTD", l.VROMMTD)
	check("vromoff", l.VROMOffset)
	for i, p := range l.ProtectedRange {
		check(fmt.Sprintf("espifcprr%d", i), p)
	}
	check("espifcrap0", l.AccessControl)
	check("espigcfg", l.ESPIConfig)
	check("fn2_host_boot_en", l.HostBootEnable)
	check("fn2_pci_vendor", l.PCIVendorID)

	return result.ErrorOrNil()
}

// ProtectedRangeRegisters returns the protected range registers in slot order.
func (l Layout) ProtectedRangeRegisters() []prr.Writer {
	slots := make([]prr.Writer, len(l.ProtectedRange))
	for i, p := range l.ProtectedRange {
		slots[i] = &sysfs.Register{Path: p, Wide: true}
	}
	return slots
}

// AccessControlRegister returns the range access protection register.
func (l Layout) AccessControlRegister() *sysfs.Register {
	return &sysfs.Register{Path: l.AccessControl, Wide: true}
}
