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

	"github.com/NVIDIA/vgraph/pkg/entity"
	"github.com/NVIDIA/vgraph/pkg/serializer"
)

// SerializerRepository writes each snapshot through a serializer.
type SerializerRepository struct {
	serializer serializer.Serializer
	version    string
	source     string
}

var _ Repository = (*SerializerRepository)(nil)

// NewSerializerRepository returns a sink writing Snapshot envelopes to s.
func NewSerializerRepository(s serializer.Serializer, version, source string) *SerializerRepository {
	return &SerializerRepository{serializer: s, version: version, source: source}
}

// Publish implements Repository.
func (r *SerializerRepository) Publish(ctx context.Context, entities []entity.MonitoredEntity) error {
	return r.serializer.Serialize(ctx, NewSnapshot(entities, r.version, r.source))
}

// Close closes the underlying serializer when it holds resources.
func (r *SerializerRepository) Close() error {
	if c, ok := r.serializer.(serializer.Closer); ok {
		return c.Close()
	}
	return nil
}
