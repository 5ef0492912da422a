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
	"context"
	"sync"

	"github.com/NVIDIA/vgraph/pkg/entity"
	"github.com/NVIDIA/vgraph/pkg/header"
)

// SnapshotDiff is the change between the two most recent snapshots.
type SnapshotDiff struct {
	header.Header `json:",inline" yaml:",inline"`

	// From and To are the timestamps of the compared snapshots. From is empty
	// after the first run.
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to" yaml:"to"`

	entity.Diff `json:",inline" yaml:",inline"`
}

// HeaderKind implements serializer.Headed.
func (d *SnapshotDiff) HeaderKind() string {
	return d.Kind.String()
}

// HeaderMetadata implements serializer.Headed.
func (d *SnapshotDiff) HeaderMetadata() map[string]string {
	return d.Metadata
}

// MemoryStore keeps the latest and previous snapshot in memory.
// It is safe for concurrent use.
type MemoryStore struct {
	version string
	source  string

	mu       sync.RWMutex
	latest   *Snapshot
	previous *Snapshot
	diff     entity.Diff
	runs     int
}

var _ Repository = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore(version, source string) *MemoryStore {
	return &MemoryStore{version: version, source: source}
}

// Publish implements Repository. The new snapshot replaces the latest one and
// the diff against it is computed.
func (m *MemoryStore) Publish(ctx context.Context, entities []entity.MonitoredEntity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := NewSnapshot(entities, m.version, m.source)

	m.mu.Lock()
	defer m.mu.Unlock()

	var prev []entity.MonitoredEntity
	if m.latest != nil {
		prev = m.latest.Entities
	}
	m.diff = entity.Compare(prev, snap.Entities)
	m.previous = m.latest
	m.latest = snap
	m.runs++
	return nil
}

// Ready reports whether at least one snapshot was published.
func (m *MemoryStore) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest != nil
}

// Runs returns the number of published snapshots.
func (m *MemoryStore) Runs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs
}

// Latest returns the most recent snapshot.
func (m *MemoryStore) Latest() (*Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest, m.latest != nil
}

// Diff returns the change between the previous and the latest snapshot.
// After the first run every entity is reported as added.
func (m *MemoryStore) Diff() (*SnapshotDiff, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latest == nil {
		return nil, false
	}
	d := &SnapshotDiff{
		Header: header.New(header.KindSnapshotDiff, m.version,
			header.WithMetadata(header.MetadataSource, m.source)),
		To:   m.latest.Metadata[header.MetadataTimestamp],
		Diff: m.diff,
	}
	if m.previous != nil {
		d.From = m.previous.Metadata[header.MetadataTimestamp]
	}
	return d, true
}

// Find returns the entities of the latest snapshot with the given id, in
// snapshot order. A host and a VM may share an id.
func (m *MemoryStore) Find(id string) []entity.MonitoredEntity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latest == nil {
		return nil
	}
	var out []entity.MonitoredEntity
	for _, e := range m.latest.Entities {
		if e.ID == id {
			out = append(out, e)
		}
	}
	return out
}
