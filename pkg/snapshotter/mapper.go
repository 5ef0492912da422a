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
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/NVIDIA/vgraph/pkg/entity"
	"github.com/NVIDIA/vgraph/pkg/inventory"
)

// MapVM converts a VM handle into a monitored entity. The identity is the
// guest host name; a VM without one is rejected with UNRESOLVABLE_IDENTITY.
// owningHost may be nil when the placement could not be resolved.
func MapVM(vm inventory.VM, owningHost *inventory.Host, datastoreNames, groupNames sets.Set[string]) (entity.MonitoredEntity, error) {
	deps := datastoreNames.Clone()
	if owningHost != nil {
		deps.Insert(owningHost.Name)
	}
	id := strings.TrimSpace(vm.GuestHostName)
	display := fmt.Sprintf("%s:%s", id, strings.TrimSpace(vm.GuestIP))
	return entity.New(entity.KindVM, id, display, vm.Ref.Value, deps, groupNames)
}

// MapHost converts a host handle into a monitored entity depending on the
// datastores it mounts.
func MapHost(host inventory.Host, datastoreNames sets.Set[string]) (entity.MonitoredEntity, error) {
	return entity.New(entity.KindHost, host.Name, host.Name, host.Ref.Value, datastoreNames, nil)
}

// MapDatastore converts a datastore handle into a leaf entity.
func MapDatastore(ds inventory.Datastore) (entity.MonitoredEntity, error) {
	return entity.New(entity.KindDatastore, ds.Name, ds.Name, ds.Ref.Value, nil, nil)
}
