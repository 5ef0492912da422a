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

package snapshotter

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/NVIDIA/vgraph/pkg/inventory"
)

// ResolveOwningHost finds the host a VM runs on by exact match of the
// reference value. The first matching host wins. Builder resolves owners
// through hostIndex, which gives the same answer in constant time.
func ResolveOwningHost(vm inventory.VM, hosts []inventory.Host) (inventory.Host, bool) {
	if vm.HostRef == nil || vm.HostRef.Value == "" {
		return inventory.Host{}, false
	}
	for _, h := range hosts {
		if h.Ref.Value == vm.HostRef.Value {
			return h, true
		}
	}
	return inventory.Host{}, false
}

// hostIndex is the map form of ResolveOwningHost. It keeps the first host
// per reference value so owner agrees with ResolveOwningHost.
type hostIndex map[string]inventory.Host

func newHostIndex(hosts []inventory.Host) hostIndex {
	idx := make(hostIndex, len(hosts))
	for _, h := range hosts {
		if h.Ref.Value == "" {
			continue
		}
		if _, exists := idx[h.Ref.Value]; !exists {
			idx[h.Ref.Value] = h
		}
	}
	return idx
}

func (idx hostIndex) owner(vm inventory.VM) (inventory.Host, bool) {
	if vm.HostRef == nil || vm.HostRef.Value == "" {
		return inventory.Host{}, false
	}
	h, ok := idx[vm.HostRef.Value]
	return h, ok
}

// DatastoreNames projects datastores onto their names.
func DatastoreNames(ds []inventory.Datastore) sets.Set[string] {
	names := sets.New[string]()
	for _, d := range ds {
		if name := strings.TrimSpace(d.Name); name != "" {
			names.Insert(name)
		}
	}
	return names
}
