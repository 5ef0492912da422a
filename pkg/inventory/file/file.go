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

// Package file implements an inventory source backed by a YAML document.
//
// The document lists datastores, and hosts with their VMs:
//
//	datastores:
//	  - name: ds-1
//	    ref: datastore-11
//	hosts:
//	  - name: esx-01
//	    ref: host-1
//	    datastores: [ds-1]
//	    vms:
//	      - name: web
//	        ref: vm-1
//	        guestHostName: web-01
//	        guestIP: 10.0.0.5
//	        datastores: [ds-1]
//
// Datastores are referenced by name from hosts and VMs. A datastore that is
// not declared at the top level gets its name as ref. A VM is placed on its
// enclosing host unless hostRef is set; an empty hostRef leaves the VM
// without a placement.
//
// Failures can be injected with fail keys to exercise partial enumeration:
// "fail.hosts" at the top level, "fail.vms" and "fail.datastores" on a host,
// and "fail.datastores" on a VM. The value is the error message.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/inventory"
)

// Document is the YAML layout of an inventory fixture.
type Document struct {
	Fail       Failures        `yaml:"fail,omitempty"`
	Datastores []DatastoreSpec `yaml:"datastores,omitempty"`
	Hosts      []HostSpec      `yaml:"hosts"`
}

// Failures holds injected error messages. Empty means no failure.
type Failures struct {
	Hosts      string `yaml:"hosts,omitempty"`
	VMs        string `yaml:"vms,omitempty"`
	Datastores string `yaml:"datastores,omitempty"`
}

// DatastoreSpec declares a datastore.
type DatastoreSpec struct {
	Name string `yaml:"name"`
	Ref  string `yaml:"ref,omitempty"`
}

// HostSpec declares a host, its mounted datastores and its VMs.
type HostSpec struct {
	Name       string   `yaml:"name"`
	Ref        string   `yaml:"ref,omitempty"`
	Datastores []string `yaml:"datastores,omitempty"`
	VMs        []VMSpec `yaml:"vms,omitempty"`
	Fail       Failures `yaml:"fail,omitempty"`
}

// VMSpec declares a VM.
type VMSpec struct {
	Name          string   `yaml:"name"`
	Ref           string   `yaml:"ref,omitempty"`
	GuestHostName string   `yaml:"guestHostName,omitempty"`
	GuestIP       string   `yaml:"guestIP,omitempty"`
	HostRef       *string  `yaml:"hostRef,omitempty"`
	Datastores    []string `yaml:"datastores,omitempty"`
	Fail          Failures `yaml:"fail,omitempty"`
}

// Source serves a Document. It is immutable after construction.
type Source struct {
	hosts      []inventory.Host
	hostVMs    map[string][]inventory.VM
	hostDS     map[string][]inventory.Datastore
	vmDS       map[string][]inventory.Datastore
	hostFail   map[string]Failures
	vmFail     map[string]Failures
	listFailed string
}

var _ inventory.Source = (*Source)(nil)

// Load reads a fixture from path.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound,
			fmt.Sprintf("failed to read inventory file %s", path), err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture.
func Parse(data []byte) (*Source, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to parse inventory document", err)
	}
	return New(doc)
}

// New indexes doc. Every host and VM needs a name; refs default to names and
// must be unique among hosts and among VMs.
func New(doc Document) (*Source, error) {
	s := &Source{
		hosts:      make([]inventory.Host, 0, len(doc.Hosts)),
		hostVMs:    make(map[string][]inventory.VM, len(doc.Hosts)),
		hostDS:     make(map[string][]inventory.Datastore, len(doc.Hosts)),
		vmDS:       make(map[string][]inventory.Datastore),
		hostFail:   make(map[string]Failures),
		vmFail:     make(map[string]Failures),
		listFailed: doc.Fail.Hosts,
	}

	stores := make(map[string]inventory.Datastore, len(doc.Datastores))
	for _, d := range doc.Datastores {
		stores[d.Name] = inventory.Datastore{
			Ref:  inventory.Ref{Kind: inventory.ObjectKindDatastore, Value: orDefault(d.Ref, d.Name)},
			Name: d.Name,
		}
	}
	resolve := func(names []string) []inventory.Datastore {
		out := make([]inventory.Datastore, 0, len(names))
		for _, n := range names {
			if d, ok := stores[n]; ok {
				out = append(out, d)
				continue
			}
			out = append(out, inventory.Datastore{
				Ref:  inventory.Ref{Kind: inventory.ObjectKindDatastore, Value: n},
				Name: n,
			})
		}
		return out
	}

	for i, hs := range doc.Hosts {
		if hs.Name == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("host at index %d has no name", i))
		}
		h := inventory.Host{
			Ref:  inventory.Ref{Kind: inventory.ObjectKindHostSystem, Value: orDefault(hs.Ref, hs.Name)},
			Name: hs.Name,
		}
		if _, dup := s.hostVMs[h.Ref.Value]; dup {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("host %s reuses ref %q", hs.Name, h.Ref.Value))
		}
		s.hosts = append(s.hosts, h)
		s.hostDS[h.Ref.Value] = resolve(hs.Datastores)
		s.hostFail[h.Ref.Value] = hs.Fail

		vms := make([]inventory.VM, 0, len(hs.VMs))
		for j, vs := range hs.VMs {
			if vs.Name == "" {
				return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
					fmt.Sprintf("vm at index %d of host %s has no name", j, hs.Name))
			}
			vm := inventory.VM{
				Ref:           inventory.Ref{Kind: inventory.ObjectKindVirtualMachine, Value: orDefault(vs.Ref, vs.Name)},
				Name:          vs.Name,
				GuestHostName: vs.GuestHostName,
				GuestIP:       vs.GuestIP,
			}
			if _, dup := s.vmDS[vm.Ref.Value]; dup {
				return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
					fmt.Sprintf("vm %s of host %s reuses ref %q", vs.Name, hs.Name, vm.Ref.Value))
			}
			placement := h.Ref
			if vs.HostRef != nil {
				placement = inventory.Ref{Kind: inventory.ObjectKindHostSystem, Value: *vs.HostRef}
			}
			if !placement.IsZero() {
				vm.HostRef = &placement
			}
			vms = append(vms, vm)
			s.vmDS[vm.Ref.Value] = resolve(vs.Datastores)
			s.vmFail[vm.Ref.Value] = vs.Fail
		}
		s.hostVMs[h.Ref.Value] = vms
	}
	return s, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ListHosts implements inventory.Source.
func (s *Source) ListHosts(ctx context.Context) ([]inventory.Host, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.listFailed != "" {
		return nil, inventory.Unreachable("hosts", fmt.Errorf("%s", s.listFailed))
	}
	return clone(s.hosts), nil
}

// ListHostVMs implements inventory.Source.
func (s *Source) ListHostVMs(ctx context.Context, host inventory.Host) ([]inventory.VM, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if msg := s.hostFail[host.Ref.Value].VMs; msg != "" {
		return nil, inventory.Unreachable("vms of host "+host.Name, fmt.Errorf("%s", msg))
	}
	return clone(s.hostVMs[host.Ref.Value]), nil
}

// ListHostDatastores implements inventory.Source.
func (s *Source) ListHostDatastores(ctx context.Context, host inventory.Host) ([]inventory.Datastore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if msg := s.hostFail[host.Ref.Value].Datastores; msg != "" {
		return nil, inventory.Unreachable("datastores of host "+host.Name, fmt.Errorf("%s", msg))
	}
	return clone(s.hostDS[host.Ref.Value]), nil
}

// ListVMDatastores implements inventory.Source.
func (s *Source) ListVMDatastores(ctx context.Context, vm inventory.VM) ([]inventory.Datastore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if msg := s.vmFail[vm.Ref.Value].Datastores; msg != "" {
		return nil, inventory.Unreachable("datastores of vm "+vm.Name, fmt.Errorf("%s", msg))
	}
	return clone(s.vmDS[vm.Ref.Value]), nil
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
