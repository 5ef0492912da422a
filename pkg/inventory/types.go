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

package inventory

import (
	"fmt"
	"strings"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

// ObjectKind is the closed set of vendor object types the builder handles.
type ObjectKind string

const (
	ObjectKindHostSystem     ObjectKind = "HostSystem"
	ObjectKindVirtualMachine ObjectKind = "VirtualMachine"
	ObjectKindDatastore      ObjectKind = "Datastore"
)

// ParseObjectKind validates a vendor type name. Matching is case-insensitive
// and the canonical spelling is returned.
func ParseObjectKind(s string) (ObjectKind, error) {
	for _, k := range []ObjectKind{ObjectKindHostSystem, ObjectKindVirtualMachine, ObjectKindDatastore} {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
		fmt.Sprintf("unsupported inventory object type %q", s))
}

// Ref is an opaque reference to an object in the source system.
// Two refs denote the same object when their Value strings are equal.
type Ref struct {
	Kind  ObjectKind `json:"kind" yaml:"kind"`
	Value string     `json:"value" yaml:"value"`
}

// NewRef builds a Ref from an untyped vendor type name.
func NewRef(kind, value string) (Ref, error) {
	k, err := ParseObjectKind(kind)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Kind: k, Value: value}, nil
}

// IsZero reports whether the ref is unset.
func (r Ref) IsZero() bool {
	return r.Value == ""
}

func (r Ref) String() string {
	return string(r.Kind) + ":" + r.Value
}

// Host is a hypervisor host.
type Host struct {
	Ref  Ref    `json:"ref" yaml:"ref"`
	Name string `json:"name" yaml:"name"`
}

// VM is a virtual machine. GuestHostName and GuestIP come from the guest
// tools and may be empty. HostRef is nil when the source does not report
// where the VM runs.
type VM struct {
	Ref           Ref    `json:"ref" yaml:"ref"`
	Name          string `json:"name" yaml:"name"`
	GuestHostName string `json:"guestHostName,omitempty" yaml:"guestHostName,omitempty"`
	GuestIP       string `json:"guestIp,omitempty" yaml:"guestIp,omitempty"`
	HostRef       *Ref   `json:"hostRef,omitempty" yaml:"hostRef,omitempty"`
}

// Datastore is a storage volume.
type Datastore struct {
	Ref  Ref    `json:"ref" yaml:"ref"`
	Name string `json:"name" yaml:"name"`
}
