// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/groups"
	"github.com/NVIDIA/vgraph/pkg/repository"
)

const testInventory = `datastores:
  - name: ds-1
    ref: datastore-11
hosts:
  - name: esx-01
    ref: host-1
    datastores: [ds-1]
    vms:
      - name: web
        ref: vm-1
        guestHostName: web-01
        datastores: [ds-1]
`

const testGroups = `groups:
  frontend:
    hosts: [web-01]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0, len(root.Commands))
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"snapshot", "serve"}, names)
}

func TestSnapshotRequiresInventory(t *testing.T) {
	root := newRootCmd()
	root.Writer = &bytes.Buffer{}
	root.ErrWriter = &bytes.Buffer{}

	err := root.Run(context.Background(), []string{name, "snapshot"})
	require.Error(t, err)
}

func TestSnapshotDryRun(t *testing.T) {
	inv := writeFile(t, "inventory.yaml", testInventory)
	grp := writeFile(t, "groups.yaml", testGroups)

	var out bytes.Buffer
	root := newRootCmd()
	root.Writer = &out

	err := root.Run(context.Background(), []string{name, "snapshot", "-i", inv, "--groups", grp, "--dry-run"})
	require.NoError(t, err)

	var snap repository.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, 3, snap.Summary.Total)
	require.Len(t, snap.Entities, 3)

	vm := snap.Entities[0]
	assert.Equal(t, "web-01", vm.ID)
	assert.Equal(t, []string{"frontend"}, vm.Groups)
	assert.ElementsMatch(t, []string{"esx-01", "ds-1"}, vm.Dependencies)
}

func TestSnapshotToFile(t *testing.T) {
	inv := writeFile(t, "inventory.yaml", testInventory)
	target := filepath.Join(t.TempDir(), "snapshot.yaml")

	root := newRootCmd()
	err := root.Run(context.Background(), []string{name, "snapshot", "-i", inv, "-o", target, "-t", "yaml"})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)

	var snap repository.Snapshot
	require.NoError(t, yaml.Unmarshal(data, &snap))
	assert.Equal(t, 1, snap.Summary.VMs)
	assert.Equal(t, 1, snap.Summary.Hosts)
	assert.Equal(t, 1, snap.Summary.Datastores)
	assert.Equal(t, inv, snap.Metadata["source"])
}

func TestSnapshotUnknownFormat(t *testing.T) {
	inv := writeFile(t, "inventory.yaml", testInventory)

	root := newRootCmd()
	err := root.Run(context.Background(), []string{name, "snapshot", "-i", inv, "-t", "xml", "--dry-run"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))
}

func TestSnapshotMissingInventoryFile(t *testing.T) {
	root := newRootCmd()
	err := root.Run(context.Background(), []string{name, "snapshot", "-i", filepath.Join(t.TempDir(), "missing.yaml"), "--dry-run"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
}

func TestOpenGroups(t *testing.T) {
	t.Run("empty target", func(t *testing.T) {
		r, err := openGroups("  ", "")
		require.NoError(t, err)
		assert.Equal(t, groups.Empty, r)
	})

	t.Run("file", func(t *testing.T) {
		r, err := openGroups(writeFile(t, "groups.yaml", testGroups), "")
		require.NoError(t, err)

		got, err := r.FindGroupsByHostName(context.Background(), "web-01")
		require.NoError(t, err)
		assert.True(t, groups.Names(got).Has("frontend"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := openGroups(filepath.Join(t.TempDir(), "nope.yaml"), "")
		require.Error(t, err)
	})

	t.Run("invalid configmap uri", func(t *testing.T) {
		_, err := openGroups("cm://only-namespace", "")
		require.Error(t, err)
	})
}
