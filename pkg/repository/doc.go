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

// Package repository receives completed topology snapshots.
//
// The builder hands every successful run to a Repository exactly once, as the
// full ordered entity list. Sinks in this package:
//
//   - SerializerRepository: wraps the list in a Snapshot envelope and writes
//     it with a serializer (stdout, file, ConfigMap).
//   - OCIRepository: pushes the Snapshot as a JSON artifact to a registry.
//   - MemoryStore: keeps the latest and previous snapshot and their diff for
//     the HTTP API.
//   - Multi: fans one publish out to several sinks in order.
//
// Open builds a sink from an output target string.
package repository
