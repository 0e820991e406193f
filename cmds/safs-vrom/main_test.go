// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/vrom/pkg/ifd"
	"github.com/linuxboot/vrom/pkg/platform"
)

const untouched = "0x0\n"

func defaultOptions(root string) options {
	return options{
		root:         root,
		hostMTD:      platform.HostMTD,
		vromMTD:      platform.VROMMTD,
		readAttempts: ifd.DefaultReadAttempts,
	}
}

func writeFile(t *testing.T, path string, b []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// setupRoot lays out the devices and registers of opts under its root.
func setupRoot(t *testing.T, opts options, d *ifd.Descriptor) {
	t.Helper()
	l := opts.config().Layout
	host := append(d.Bytes(), make([]byte, 0x1000)...)
	writeFile(t, l.HostMTD, host)
	writeFile(t, l.VROMMTD, make([]byte, len(host)))
	for _, path := range append(l.ProtectedRange[:], l.VROMOffset, l.AccessControl, l.ESPIConfig, l.HostBootEnable, l.PCIVendorID) {
		writeFile(t, path, []byte(untouched))
	}
}

func TestConfigJoinsRoot(t *testing.T) {
	opts := defaultOptions("/tmp/target")
	opts.hostMTD = "/dev/mtd0"
	opts.readAttempts = 3

	cfg := opts.config()
	assert.Equal(t, "/tmp/target/dev/mtd0", cfg.Layout.HostMTD)
	assert.Equal(t, "/tmp/target/dev/mtd/by-name/vrom-prime", cfg.Layout.VROMMTD)
	assert.Equal(t, "/tmp/target/sys/class/soc/kw_reg_list/espifcprr0", cfg.Layout.ProtectedRange[0])
	assert.Equal(t, 3, cfg.ReadAttempts)

	cfg = defaultOptions("/").config()
	assert.Equal(t, platform.DefaultLayout("/"), cfg.Layout)
}

func TestRunRejectsArguments(t *testing.T) {
	err := run(defaultOptions(t.TempDir()), []string{"extra"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}

func TestRunDryRun(t *testing.T) {
	opts := defaultOptions(t.TempDir())
	opts.hostMTD = "host.bin"
	opts.dryRun = true
	d := ifd.NewDescriptor()
	d.Regions[ifd.RegionTypeBIOS] = ifd.Region{Base: 0x100, Limit: 0xFFF}
	setupRoot(t, opts, d)
	l := opts.config().Layout

	var out bytes.Buffer
	require.NoError(t, run(opts, nil, &out))
	assert.Contains(t, out.String(), "0x10000100")
	assert.Contains(t, out.String(), "0x0001000f")

	assert.Equal(t, make([]byte, len(d.Bytes())+0x1000), []byte(readFile(t, l.VROMMTD)))
	for _, path := range append(l.ProtectedRange[:], l.VROMOffset, l.AccessControl) {
		assert.Equal(t, untouched, readFile(t, path), path)
	}
}

func TestRunDryRunAllUnused(t *testing.T) {
	opts := defaultOptions(t.TempDir())
	opts.dryRun = true
	setupRoot(t, opts, ifd.NewDescriptor())

	var out bytes.Buffer
	require.Error(t, run(opts, nil, &out))
	assert.Contains(t, out.String(), "BIOS")
}

func TestRun(t *testing.T) {
	opts := defaultOptions(t.TempDir())
	d := ifd.NewDescriptor()
	d.Regions[ifd.RegionTypeME] = ifd.Region{Base: 0x3, Limit: 0xFF}
	setupRoot(t, opts, d)
	l := opts.config().Layout

	require.NoError(t, run(opts, nil, &bytes.Buffer{}))
	assert.Equal(t, readFile(t, l.HostMTD), readFile(t, l.VROMMTD))
	assert.Equal(t, "0x01000003", readFile(t, l.ProtectedRange[0]))
	assert.Equal(t, "0x0001000f", readFile(t, l.AccessControl))
	assert.Equal(t, "0x3d91590", readFile(t, l.PCIVendorID))
}
