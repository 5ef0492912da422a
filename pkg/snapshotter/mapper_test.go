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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/NVIDIA/vgraph/pkg/entity"
	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/inventory"
)

func TestMapVM(t *testing.T) {
	host := &inventory.Host{Ref: inventory.Ref{Kind: inventory.ObjectKindHostSystem, Value: "host-1"}, Name: "esx-1"}
	vm := inventory.VM{
		Ref:           inventory.Ref{Kind: inventory.ObjectKindVirtualMachine, Value: "vm-42"},
		Name:          "web",
		GuestHostName: "web-01",
		GuestIP:       "10.0.0.5",
	}

	t.Run("full", func(t *testing.T) {
		datastores := sets.New("ds-1", "ds-2")
		e, err := MapVM(vm, host, datastores, sets.New("prod"))
		require.NoError(t, err)
		assert.Equal(t, entity.KindVM, e.Kind)
		assert.Equal(t, "web-01", e.ID)
		assert.Equal(t, "web-01", e.Host)
		assert.Equal(t, "web-01:10.0.0.5", e.DisplayText)
		assert.Equal(t, "vm-42", e.VendorSpecificID)
		assert.Equal(t, []string{"ds-1", "ds-2", "esx-1"}, e.Dependencies)
		assert.Equal(t, []string{"prod"}, e.Groups)
		assert.Equal(t, 2, datastores.Len(), "input set must not be modified")
	})

	t.Run("no owner no ip", func(t *testing.T) {
		v := vm
		v.GuestIP = ""
		e, err := MapVM(v, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "web-01:", e.DisplayText)
		assert.Empty(t, e.Dependencies)
		assert.Empty(t, e.Groups)
	})

	t.Run("padded guest host name", func(t *testing.T) {
		v := vm
		v.GuestHostName = " web-01 "
		v.GuestIP = " 10.0.0.5"
		e, err := MapVM(v, nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "web-01", e.ID)
		assert.Equal(t, "web-01:10.0.0.5", e.DisplayText)
	})

	t.Run("blank guest host name", func(t *testing.T) {
		v := vm
		v.GuestHostName = "   "
		_, err := MapVM(v, host, nil, nil)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnresolvableIdentity))
	})

	t.Run("missing guest host name", func(t *testing.T) {
		v := vm
		v.GuestHostName = ""
		_, err := MapVM(v, host, sets.New("ds-1"), nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnresolvableIdentity))
	})
}

func TestMapHost(t *testing.T) {
	h := inventory.Host{Ref: inventory.Ref{Kind: inventory.ObjectKindHostSystem, Value: "host-1"}, Name: "esx-1"}
	e, err := MapHost(h, sets.New("ds-2", "ds-1"))
	require.NoError(t, err)
	assert.Equal(t, entity.KindHost, e.Kind)
	assert.Equal(t, "esx-1", e.DisplayText)
	assert.Equal(t, []string{"ds-1", "ds-2"}, e.Dependencies)
	assert.Empty(t, e.Groups)

	_, err = MapHost(inventory.Host{}, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnresolvableIdentity))
}

func TestMapDatastore(t *testing.T) {
	e, err := MapDatastore(inventory.Datastore{Ref: inventory.Ref{Kind: inventory.ObjectKindDatastore, Value: "datastore-7"}, Name: "ds-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.KindDatastore, e.Kind)
	assert.Equal(t, "datastore-7", e.VendorSpecificID)
	assert.Empty(t, e.Dependencies)
	assert.Empty(t, e.Groups)

	_, err = MapDatastore(inventory.Datastore{})
	assert.Error(t, err)
}
