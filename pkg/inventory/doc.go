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

// Package inventory defines the contract between the topology builder and the
// infrastructure management system that owns the raw inventory.
//
// A Source answers four queries: the hosts under its root scope, the VMs and
// datastores of one host, and the datastores of one VM. Handles carry a typed
// vendor reference (Ref) whose ObjectKind is validated at the adapter
// boundary, so untyped vendor objects never reach the builder.
//
// Each sub-query can fail independently. Callers wrap the outcome of a
// sub-query in a Result and fold it with OrEmpty, which logs the failure and
// continues with an empty list:
//
//	vms := inventory.Query(src.ListHostVMs(ctx, h)).
//		OrEmpty(logger, "query", "ListHostVMs", "host", h.Name)
//
// Adapters live in sub-packages: file (YAML fixture), vsphere (govmomi) and
// libvirt. Package factory opens one of them from a URI.
package inventory
