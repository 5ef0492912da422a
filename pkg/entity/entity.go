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
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/apimachinery/pkg/util/sets"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

// Kind tags the type of a monitored entity. It drives downstream rendering
// and probing policy.
type Kind string

const (
	KindVM        Kind = "vm"
	KindHost      Kind = "host"
	KindDatastore Kind = "datastore"
)

var kindTitles = map[Kind]string{
	KindVM:        "virtual machine",
	KindHost:      "host",
	KindDatastore: "datastore",
}

var titleCaser = cases.Title(language.English)

// Kinds returns all kinds in snapshot emission order.
func Kinds() []Kind {
	return []Kind{KindVM, KindHost, KindDatastore}
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	_, ok := kindTitles[k]
	return ok
}

// Title returns a human readable label such as "Virtual Machine".
func (k Kind) Title() string {
	label, ok := kindTitles[k]
	if !ok {
		label = string(k)
	}
	return titleCaser.String(label)
}

// MonitoredEntity is one node of the topology graph.
type MonitoredEntity struct {
	// ID is the stable identity of the entity: the guest host name for VMs,
	// the host name for hosts and the name for datastores.
	ID string `json:"id" yaml:"id"`

	// Host is the network addressable name used by monitoring probes.
	// It duplicates ID.
	Host string `json:"host" yaml:"host"`

	// Kind is the entity type.
	Kind Kind `json:"kind" yaml:"kind"`

	// DisplayText is the human readable label.
	DisplayText string `json:"displayText" yaml:"displayText"`

	// VendorSpecificID is the opaque source platform reference. It is only
	// used to correlate with the source system, never for graph identity.
	VendorSpecificID string `json:"vendorSpecificId,omitempty" yaml:"vendorSpecificId,omitempty"`

	// Dependencies holds the identities this entity depends on, sorted.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`

	// Groups holds the group tags of the entity, sorted.
	Groups []string `json:"groups" yaml:"groups"`
}

// New builds a MonitoredEntity. The id must not be blank. A dependency on the
// entity's own id is dropped, and empty names are ignored in both sets.
func New(kind Kind, id, displayText, vendorID string, dependencies, groups sets.Set[string]) (MonitoredEntity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MonitoredEntity{}, apperrors.NewWithContext(apperrors.ErrCodeUnresolvableIdentity,
			fmt.Sprintf("%s has no identity", kind), map[string]any{
				"kind":     string(kind),
				"vendorId": vendorID,
			})
	}
	if !kind.IsValid() {
		return MonitoredEntity{}, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown entity kind %q", kind))
	}

	deps := normalize(dependencies)
	deps = slices.DeleteFunc(deps, func(d string) bool { return d == id })

	return MonitoredEntity{
		ID:               id,
		Host:             id,
		Kind:             kind,
		DisplayText:      displayText,
		VendorSpecificID: vendorID,
		Dependencies:     deps,
		Groups:           normalize(groups),
	}, nil
}

func normalize(in sets.Set[string]) []string {
	out := make([]string, 0, in.Len())
	for _, v := range sets.List(in) {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// DependsOn reports whether the entity has an edge to id.
func (e MonitoredEntity) DependsOn(id string) bool {
	_, found := slices.BinarySearch(e.Dependencies, id)
	return found
}

// InGroup reports whether the entity carries the group tag.
func (e MonitoredEntity) InGroup(name string) bool {
	_, found := slices.BinarySearch(e.Groups, name)
	return found
}

// DependencySet returns the dependencies as a set.
func (e MonitoredEntity) DependencySet() sets.Set[string] {
	return sets.New(e.Dependencies...)
}

// GroupSet returns the groups as a set.
func (e MonitoredEntity) GroupSet() sets.Set[string] {
	return sets.New(e.Groups...)
}

// Equal reports whether two entities carry identical content.
func (e MonitoredEntity) Equal(o MonitoredEntity) bool {
	return e.ID == o.ID &&
		e.Host == o.Host &&
		e.Kind == o.Kind &&
		e.DisplayText == o.DisplayText &&
		e.VendorSpecificID == o.VendorSpecificID &&
		slices.Equal(e.Dependencies, o.Dependencies) &&
		slices.Equal(e.Groups, o.Groups)
}

// CountByKind tallies entities per kind.
func CountByKind(entities []MonitoredEntity) map[Kind]int {
	counts := make(map[Kind]int, len(kindTitles))
	for _, e := range entities {
		counts[e.Kind]++
	}
	return counts
}
