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
	"strings"

	"github.com/NVIDIA/vgraph/pkg/entity"
	"github.com/NVIDIA/vgraph/pkg/header"
)

// Snapshot is the serialized form of one run.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// Summary counts entities per kind.
	Summary Summary `json:"summary" yaml:"summary"`

	// Entities in emission order: VMs, hosts, datastores.
	Entities []entity.MonitoredEntity `json:"entities" yaml:"entities"`
}

// Summary counts the entities of a snapshot.
type Summary struct {
	VMs        int `json:"vms" yaml:"vms"`
	Hosts      int `json:"hosts" yaml:"hosts"`
	Datastores int `json:"datastores" yaml:"datastores"`
	Total      int `json:"total" yaml:"total"`
}

// Summarize counts entities per kind.
func Summarize(entities []entity.MonitoredEntity) Summary {
	counts := entity.CountByKind(entities)
	return Summary{
		VMs:        counts[entity.KindVM],
		Hosts:      counts[entity.KindHost],
		Datastores: counts[entity.KindDatastore],
		Total:      len(entities),
	}
}

// NewSnapshot wraps entities in an envelope stamped with version and source.
func NewSnapshot(entities []entity.MonitoredEntity, version, source string, opts ...header.Option) *Snapshot {
	if entities == nil {
		entities = []entity.MonitoredEntity{}
	}
	opts = append([]header.Option{header.WithMetadata(header.MetadataSource, source)}, opts...)
	return &Snapshot{
		Header:   header.New(header.KindSnapshot, version, opts...),
		Summary:  Summarize(entities),
		Entities: entities,
	}
}

// HeaderKind implements serializer.Headed.
func (s *Snapshot) HeaderKind() string {
	return s.Kind.String()
}

// HeaderMetadata implements serializer.Headed.
func (s *Snapshot) HeaderMetadata() map[string]string {
	return s.Metadata
}

// TableHeader implements serializer.Tabular.
func (s *Snapshot) TableHeader() []string {
	return []string{"KIND", "ID", "DISPLAY", "DEPENDENCIES", "GROUPS"}
}

// TableRows implements serializer.Tabular.
func (s *Snapshot) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Entities))
	for _, e := range s.Entities {
		rows = append(rows, []string{
			e.Kind.Title(),
			e.ID,
			e.DisplayText,
			joinOrDash(e.Dependencies),
			joinOrDash(e.Groups),
		})
	}
	return rows
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}
