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

package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/memory"

	"github.com/NVIDIA/vgraph/pkg/entity"
	"github.com/NVIDIA/vgraph/pkg/header"
	"github.com/NVIDIA/vgraph/pkg/oci"
	"github.com/NVIDIA/vgraph/pkg/serializer"
)

func mustEntity(t *testing.T, kind entity.Kind, id string, deps ...string) entity.MonitoredEntity {
	t.Helper()
	e, err := entity.New(kind, id, id, "", sets.New(deps...), nil)
	require.NoError(t, err)
	return e
}

func sample(t *testing.T) []entity.MonitoredEntity {
	return []entity.MonitoredEntity{
		mustEntity(t, entity.KindVM, "vm-a", "esx-1", "ds-1"),
		mustEntity(t, entity.KindHost, "esx-1", "ds-1"),
		mustEntity(t, entity.KindDatastore, "ds-1"),
	}
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot(sample(t), "v1.2.3", "file:///tmp/inv.yaml")

	assert.Equal(t, header.KindSnapshot, snap.Kind)
	assert.Equal(t, header.APIVersion, snap.APIVersion)
	assert.Equal(t, "v1.2.3", snap.Metadata[header.MetadataVersion])
	assert.Equal(t, "file:///tmp/inv.yaml", snap.Metadata[header.MetadataSource])
	assert.Equal(t, Summary{VMs: 1, Hosts: 1, Datastores: 1, Total: 3}, snap.Summary)
	assert.Equal(t, "Snapshot", snap.HeaderKind())
}

func TestNewSnapshotNilEntities(t *testing.T) {
	snap := NewSnapshot(nil, "", "")
	require.NotNil(t, snap.Entities)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"entities":[]`)
	assert.Contains(t, string(raw), `"kind":"Snapshot"`)
}

func TestSnapshotTable(t *testing.T) {
	snap := NewSnapshot(sample(t), "", "")
	rows := snap.TableRows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Virtual Machine", "vm-a", "vm-a", "ds-1,esx-1", "-"}, rows[0])
	assert.Equal(t, "-", rows[2][3])
	assert.Len(t, snap.TableHeader(), len(rows[0]))
}

func TestSerializerRepository(t *testing.T) {
	var buf bytes.Buffer
	repo := NewSerializerRepository(serializer.NewWriter(serializer.FormatJSON, &buf), "v1", "test")

	require.NoError(t, repo.Publish(context.Background(), sample(t)))

	var got Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, header.KindSnapshot, got.Kind)
	require.Len(t, got.Entities, 3)
	assert.Equal(t, "vm-a", got.Entities[0].ID)
	assert.Equal(t, 3, got.Summary.Total)
	assert.NoError(t, repo.Close())
}

func TestOCIRepository(t *testing.T) {
	ctx := context.Background()
	dst := memory.New()
	ref, err := oci.ParseReference("oci://registry.example.com/topology/snapshots")
	require.NoError(t, err)

	repo := NewOCIRepository(ref, oci.PushOptions{}, "v1", "vsphere://vc.example.com")
	repo.target = dst
	require.Equal(t, DefaultTag, repo.ref.Tag)

	require.NoError(t, repo.Publish(ctx, sample(t)))

	desc, err := dst.Resolve(ctx, DefaultTag)
	require.NoError(t, err)
	raw, err := content.FetchAll(ctx, dst, desc)
	require.NoError(t, err)

	var manifest ociv1.Manifest
	require.NoError(t, json.Unmarshal(raw, &manifest))
	assert.Equal(t, oci.ArtifactType, manifest.ArtifactType)
	assert.Equal(t, "v1", manifest.Annotations[ociv1.AnnotationVersion])
	require.Len(t, manifest.Layers, 1)

	body, err := content.FetchAll(ctx, dst, manifest.Layers[0])
	require.NoError(t, err)
	var got Snapshot
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Len(t, got.Entities, 3)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("v1", "test")

	assert.False(t, store.Ready())
	_, ok := store.Latest()
	assert.False(t, ok)
	_, ok = store.Diff()
	assert.False(t, ok)

	first := sample(t)
	require.NoError(t, store.Publish(ctx, first))
	assert.True(t, store.Ready())

	d, ok := store.Diff()
	require.True(t, ok)
	assert.Empty(t, d.From)
	assert.Len(t, d.Added, 3)
	assert.Equal(t, header.KindSnapshotDiff, d.Kind)

	second := []entity.MonitoredEntity{
		mustEntity(t, entity.KindVM, "vm-a", "esx-1"),
		mustEntity(t, entity.KindHost, "esx-1", "ds-1"),
		mustEntity(t, entity.KindHost, "esx-2"),
	}
	require.NoError(t, store.Publish(ctx, second))

	d, ok = store.Diff()
	require.True(t, ok)
	assert.Equal(t, []entity.Key{{Kind: entity.KindHost, ID: "esx-2"}}, d.Added)
	assert.Equal(t, []entity.Key{{Kind: entity.KindDatastore, ID: "ds-1"}}, d.Removed)
	assert.Equal(t, []entity.Key{{Kind: entity.KindVM, ID: "vm-a"}}, d.Changed)
	assert.Equal(t, 2, store.Runs())

	latest, ok := store.Latest()
	require.True(t, ok)
	assert.Len(t, latest.Entities, 3)

	assert.Len(t, store.Find("esx-2"), 1)
	assert.Empty(t, store.Find("ds-1"))
}

func TestMemoryStoreCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore("", "")
	assert.Error(t, store.Publish(ctx, sample(t)))
	assert.False(t, store.Ready())
}

func TestMulti(t *testing.T) {
	var calls []string
	record := func(name string, err error) Repository {
		return Func(func(context.Context, []entity.MonitoredEntity) error {
			calls = append(calls, name)
			return err
		})
	}

	boom := errors.New("boom")
	err := Multi(record("a", nil), record("b", boom), record("c", nil)).Publish(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestOpen(t *testing.T) {
	t.Run("oci", func(t *testing.T) {
		repo, closer, err := Open("oci://ghcr.io/nvidia/vgraph:v1", Options{})
		require.NoError(t, err)
		require.NotNil(t, closer)
		o, ok := repo.(*OCIRepository)
		require.True(t, ok)
		assert.Equal(t, "v1", o.ref.Tag)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snap.yaml")
		repo, closer, err := Open(path, Options{Format: serializer.FormatYAML, Version: "v2"})
		require.NoError(t, err)
		require.NoError(t, repo.Publish(context.Background(), sample(t)))
		require.NoError(t, closer.Close())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(raw), "kind: Snapshot"))
		assert.Contains(t, string(raw), "id: vm-a")
	})

	t.Run("invalid oci", func(t *testing.T) {
		_, closer, err := Open("oci://", Options{})
		require.Error(t, err)
		assert.NotNil(t, closer)
	})
}
