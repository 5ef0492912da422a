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

package header

import (
	"time"
)

// APIVersion is the schema version of every vgraph document.
const APIVersion = "vgraph.nvidia.com/v1alpha1"

// Metadata keys written by Init and the snapshot sinks.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
	MetadataSource    = "source"
	MetadataRunID     = "runId"
)

// Kind is the type of a vgraph document.
type Kind string

const (
	KindSnapshot     Kind = "Snapshot"
	KindSnapshotDiff Kind = "SnapshotDiff"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSnapshot, KindSnapshotDiff:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair. Empty values are skipped.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if value == "" {
			return
		}
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithTimestamp overrides the creation timestamp.
func WithTimestamp(t time.Time) Option {
	return WithMetadata(MetadataTimestamp, t.UTC().Format(time.RFC3339))
}

// Header carries Kubernetes-style kind, apiVersion and metadata fields.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// New returns a header of the given kind stamped with the current time and
// version, then applies opts.
func New(kind Kind, version string, opts ...Option) Header {
	var h Header
	h.Init(kind, APIVersion, version)
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Init sets kind and apiVersion and resets metadata to the current UTC
// timestamp plus version when non-empty.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// Timestamp parses the timestamp metadata. The zero time is returned when it
// is missing or malformed.
func (h Header) Timestamp() time.Time {
	t, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	if err != nil {
		return time.Time{}
	}
	return t
}
