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

package entity

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// Key identifies an entity within a snapshot. Two entities of different kinds
// may share a name (a host and a VM both called "db-01"), so identity inside a
// snapshot is the pair.
type Key struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	ID   string `json:"id" yaml:"id"`
}

// KeyOf returns the snapshot key of e.
func KeyOf(e MonitoredEntity) Key {
	return Key{Kind: e.Kind, ID: e.ID}
}

// Index maps entities by key. When a key repeats, the first entity wins.
func Index(entities []MonitoredEntity) map[Key]MonitoredEntity {
	idx := make(map[Key]MonitoredEntity, len(entities))
	for _, e := range entities {
		k := KeyOf(e)
		if _, exists := idx[k]; !exists {
			idx[k] = e
		}
	}
	return idx
}

// Diff summarizes the change between two snapshots.
type Diff struct {
	Added   []Key `json:"added" yaml:"added"`
	Removed []Key `json:"removed" yaml:"removed"`
	Changed []Key `json:"changed" yaml:"changed"`
}

// Empty reports whether the two snapshots were set-equal.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare computes the difference from prev to next. Keys in each list follow
// the order in which they appear in next (added, changed) or prev (removed).
func Compare(prev, next []MonitoredEntity) Diff {
	before := Index(prev)
	after := Index(next)

	d := Diff{
		Added:   []Key{},
		Removed: []Key{},
		Changed: []Key{},
	}
	seen := sets.New[Key]()
	for _, e := range next {
		k := KeyOf(e)
		if seen.Has(k) {
			continue
		}
		seen.Insert(k)
		old, ok := before[k]
		switch {
		case !ok:
			d.Added = append(d.Added, k)
		case !old.Equal(after[k]):
			d.Changed = append(d.Changed, k)
		}
	}
	seen = sets.New[Key]()
	for _, e := range prev {
		k := KeyOf(e)
		if seen.Has(k) {
			continue
		}
		seen.Insert(k)
		if _, ok := after[k]; !ok {
			d.Removed = append(d.Removed, k)
		}
	}
	return d
}
