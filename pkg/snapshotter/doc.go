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

// Package snapshotter builds topology snapshots from an inventory source.
//
// A run walks the inventory in three tiers:
//
//  1. hosts under the root scope (failure is fatal),
//  2. per host its VMs and mounted datastores,
//  3. per VM its backing datastores, owning host and group tags.
//
// Tier 2 and 3 queries run in a bounded worker pool. A failed sub-query is
// folded into an empty result with a warning, so one unreachable host only
// costs its own VMs. Entities whose identity cannot be resolved are skipped.
//
// The published list is always VMs, then hosts, then datastores, each in
// discovery order:
//
//	b := snapshotter.NewBuilder(src, repo,
//	    snapshotter.WithGroups(resolver),
//	    snapshotter.WithWorkers(16),
//	)
//	if err := b.Run(ctx); err != nil {
//	    return err
//	}
//
// Dependency edges:
//
//	vm        -> datastores backing the VM, owning host
//	host      -> datastores mounted by the host
//	datastore -> none
//
// Metrics are exported under the vgraph_snapshot_ prefix.
package snapshotter
