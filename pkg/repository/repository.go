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
)

// Repository stores one completed snapshot. Publish receives the whole entity
// list of a run; ownership of the slice passes to the repository.
type Repository interface {
	Publish(ctx context.Context, entities []entity.MonitoredEntity) error
}

// Func adapts a function to Repository.
type Func func(ctx context.Context, entities []entity.MonitoredEntity) error

// Publish implements Repository.
func (f Func) Publish(ctx context.Context, entities []entity.MonitoredEntity) error {
	return f(ctx, entities)
}

// Multi publishes to each repository in order and stops at the first error.
func Multi(repos ...Repository) Repository {
	return multi(repos)
}

type multi []Repository

func (m multi) Publish(ctx context.Context, entities []entity.MonitoredEntity) error {
	for _, r := range m {
		if err := r.Publish(ctx, entities); err != nil {
			return err
		}
	}
	return nil
}
