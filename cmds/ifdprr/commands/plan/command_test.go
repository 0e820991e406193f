// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/vrom/cmds/ifdprr/commands"
	"github.com/linuxboot/vrom/pkg/ifd"
	"github.com/linuxboot/vrom/pkg/prr"
)

func writeImage(t *testing.T, d *ifd.Descriptor) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flash.bin")
	require.NoError(t, os.WriteFile(path, append(d.Bytes(), make([]byte, 0x1000)...), 0o644))
	return path
}

func TestExecute(t *testing.T) {
	d := ifd.NewDescriptor()
	d.Regions[ifd.RegionTypeBIOS] = ifd.Region{Base: 0x100, Limit: 0xFFF}

	var buf bytes.Buffer
	cmd := &Command{ImageOptions: commands.ImageOptions{ImagePath: writeImage(t, d)}, out: &buf}
	require.NoError(t, cmd.Execute(nil))
	assert.Contains(t, buf.String(), "0x10000100")
	assert.Contains(t, buf.String(), "0x0001000f")
}

func TestExecuteAllUnused(t *testing.T) {
	var buf bytes.Buffer
	cmd := &Command{ImageOptions: commands.ImageOptions{ImagePath: writeImage(t, ifd.NewDescriptor())}, out: &buf}
	assert.ErrorIs(t, cmd.Execute(nil), prr.ErrNoUsedRegions)
	assert.Empty(t, buf.String())
}

func TestExecuteExtraArgs(t *testing.T) {
	cmd := &Command{}
	var argsErr commands.ErrArgs
	assert.ErrorAs(t, cmd.Execute([]string{"extra"}), &argsErr)
}
