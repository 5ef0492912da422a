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

// Package groups resolves the group tags attached to a VM.
//
// A Resolver maps the guest host name of a VM to zero or more Group records.
// Only the group names end up on the monitored entity; attributes are kept
// for callers that need them.
//
// Implementations:
//   - Static: an in-memory host to groups index, usually loaded from YAML
//     with LoadFile.
//   - ConfigMapResolver: reads a Kubernetes ConfigMap whose keys are host
//     names and whose values list group names.
//   - Empty: used when no grouping is configured.
package groups
