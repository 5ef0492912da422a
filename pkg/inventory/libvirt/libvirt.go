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

// Package libvirt implements an inventory source over one or more libvirt
// hypervisors. Each connection URI is one host; its domains are VMs and its
// storage pools are datastores. The datastores of a VM are the pools holding
// the disks listed in the domain XML.
package libvirt

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"
	"libvirt.org/go/libvirt"
	"libvirt.org/go/libvirtxml"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/inventory"
)

// Connection is the subset of *libvirt.Connect used by the source.
type Connection interface {
	GetHostname() (string, error)
	ListAllDomains(flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, error)
	ListAllStoragePools(flags libvirt.ConnectListAllStoragePoolsFlags) ([]libvirt.StoragePool, error)
	LookupDomainByUUIDString(uuid string) (*libvirt.Domain, error)
	Close() (int, error)
}

type hypervisor struct {
	uri  string
	conn Connection
	host inventory.Host
}

// Source reads domains and pools from a fixed set of hypervisors.
type Source struct {
	mu     sync.RWMutex
	hosts  []*hypervisor
	byRef  map[string]*hypervisor
	logger *slog.Logger
}

var _ inventory.Source = (*Source)(nil)

// Open connects to every URI. Connections opened before a failure are closed.
func Open(uris []string, logger *slog.Logger) (*Source, error) {
	if len(uris) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "at least one libvirt URI is required")
	}
	conns := make(map[string]Connection, len(uris))
	for _, uri := range uris {
		c, err := libvirt.NewConnect(uri)
		if err != nil {
			for _, open := range conns {
				_, _ = open.Close()
			}
			return nil, inventory.Unreachable(uri, err)
		}
		conns[uri] = c
	}
	return New(uris, conns, logger), nil
}

// New builds a Source over already established connections keyed by URI.
// The order of uris is the host listing order.
func New(uris []string, conns map[string]Connection, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Source{
		byRef:  make(map[string]*hypervisor, len(uris)),
		logger: logger,
	}
	for _, uri := range uris {
		c, ok := conns[uri]
		if !ok {
			continue
		}
		hv := &hypervisor{
			uri:  uri,
			conn: c,
			host: inventory.Host{
				Ref: inventory.Ref{Kind: inventory.ObjectKindHostSystem, Value: uri},
			},
		}
		s.hosts = append(s.hosts, hv)
		s.byRef[uri] = hv
	}
	return s
}

// Close releases every connection.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, hv := range s.hosts {
		if _, err := hv.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ListHosts implements inventory.Source. The host name is the hypervisor's
// hostname; the ref is its connection URI.
func (s *Source) ListHosts(ctx context.Context) ([]inventory.Host, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]inventory.Host, 0, len(s.hosts))
	for _, hv := range s.hosts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, err := hv.conn.GetHostname()
		if err != nil {
			return nil, inventory.Unreachable(hv.uri, err)
		}
		hv.host.Name = name
		out = append(out, hv.host)
	}
	return out, nil
}

func (s *Source) lookup(ref inventory.Ref) (*hypervisor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	hv, ok := s.byRef[ref.Value]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeNotFound,
			fmt.Sprintf("no libvirt connection for %s", ref.Value))
	}
	return hv, nil
}

// ListHostVMs implements inventory.Source. The guest host name comes from the
// guest agent and is empty when the agent does not report one.
func (s *Source) ListHostVMs(ctx context.Context, host inventory.Host) ([]inventory.VM, error) {
	hv, err := s.lookup(host.Ref)
	if err != nil {
		return nil, err
	}
	domains, err := hv.conn.ListAllDomains(0)
	if err != nil {
		return nil, inventory.Unreachable("domains of "+host.Name, err)
	}
	defer freeDomains(domains)

	out := make([]inventory.VM, 0, len(domains))
	for i := range domains {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dom := &domains[i]
		uuid, err := dom.GetUUIDString()
		if err != nil {
			return nil, inventory.Unreachable("domains of "+host.Name, err)
		}
		name, err := dom.GetName()
		if err != nil {
			return nil, inventory.Unreachable("domains of "+host.Name, err)
		}
		hostRef := host.Ref
		out = append(out, inventory.VM{
			Ref:           inventory.Ref{Kind: inventory.ObjectKindVirtualMachine, Value: hv.uri + "#" + uuid},
			Name:          name,
			GuestHostName: guestHostName(dom),
			GuestIP:       guestIP(dom),
			HostRef:       &hostRef,
		})
	}
	return out, nil
}

// hostnameReader is the part of libvirt.Domain read by guestHostName.
type hostnameReader interface {
	GetHostname(flags libvirt.DomainGetHostnameFlags) (string, error)
}

// guestHostName returns the name reported by the guest, or "" when there is
// none. The domain name is not a guest identity.
func guestHostName(dom hostnameReader) string {
	name, err := dom.GetHostname(0)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

func guestIP(dom *libvirt.Domain) string {
	ifaces, err := dom.ListAllInterfaceAddresses(libvirt.DOMAIN_INTERFACE_ADDRESSES_SRC_LEASE)
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		for _, addr := range iface.Addrs {
			if addr.Type == libvirt.IP_ADDR_TYPE_IPV4 {
				return strings.Split(addr.Addr, "/")[0]
			}
		}
	}
	return ""
}

func freeDomains(domains []libvirt.Domain) {
	for i := range domains {
		_ = domains[i].Free()
	}
}

// Pool describes a storage pool by name and target directory.
type Pool struct {
	UUID string
	Name string
	Path string
}

func (s *Source) pools(hv *hypervisor) ([]Pool, error) {
	list, err := hv.conn.ListAllStoragePools(0)
	if err != nil {
		return nil, err
	}
	out := make([]Pool, 0, len(list))
	for i := range list {
		p := &list[i]
		desc, err := p.GetXMLDesc(0)
		_ = p.Free()
		if err != nil {
			return nil, err
		}
		pool, err := ParsePool(desc)
		if err != nil {
			s.logger.Warn("skipping unparsable storage pool", "uri", hv.uri, "error", err)
			continue
		}
		out = append(out, pool)
	}
	return out, nil
}

// ListHostDatastores implements inventory.Source.
func (s *Source) ListHostDatastores(ctx context.Context, host inventory.Host) ([]inventory.Datastore, error) {
	hv, err := s.lookup(host.Ref)
	if err != nil {
		return nil, err
	}
	pools, err := s.pools(hv)
	if err != nil {
		return nil, inventory.Unreachable("storage pools of "+host.Name, err)
	}
	out := make([]inventory.Datastore, 0, len(pools))
	for _, p := range pools {
		out = append(out, datastore(hv, p))
	}
	return out, nil
}

// ListVMDatastores implements inventory.Source.
func (s *Source) ListVMDatastores(ctx context.Context, vm inventory.VM) ([]inventory.Datastore, error) {
	uri, uuid, ok := strings.Cut(vm.Ref.Value, "#")
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("malformed libvirt vm ref %q", vm.Ref.Value))
	}
	hv, err := s.lookup(inventory.Ref{Kind: inventory.ObjectKindHostSystem, Value: uri})
	if err != nil {
		return nil, err
	}

	dom, err := hv.conn.LookupDomainByUUIDString(uuid)
	if err != nil {
		return nil, inventory.Unreachable("domain "+vm.Name, err)
	}
	desc, err := dom.GetXMLDesc(0)
	_ = dom.Free()
	if err != nil {
		return nil, inventory.Unreachable("domain "+vm.Name, err)
	}

	var spec libvirtxml.Domain
	if err := spec.Unmarshal(desc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to parse domain XML", err)
	}

	pools, err := s.pools(hv)
	if err != nil {
		return nil, inventory.Unreachable("storage pools of "+hv.host.Name, err)
	}

	names := DiskPools(&spec, pools)
	out := make([]inventory.Datastore, 0, names.Len())
	for _, p := range pools {
		if names.Has(p.Name) {
			out = append(out, datastore(hv, p))
		}
	}
	return out, nil
}

func datastore(hv *hypervisor, p Pool) inventory.Datastore {
	return inventory.Datastore{
		Ref:  inventory.Ref{Kind: inventory.ObjectKindDatastore, Value: hv.uri + "#" + p.UUID},
		Name: p.Name,
	}
}

// ParsePool extracts the name and target path of a storage pool XML
// description.
func ParsePool(desc string) (Pool, error) {
	var spec libvirtxml.StoragePool
	if err := spec.Unmarshal(desc); err != nil {
		return Pool{}, err
	}
	p := Pool{UUID: spec.UUID, Name: spec.Name}
	if spec.Target != nil {
		p.Path = filepath.Clean(spec.Target.Path)
	}
	if p.UUID == "" {
		p.UUID = p.Name
	}
	return p, nil
}

// DiskPools returns the names of the pools backing the disks of dom. Volume
// disks name their pool directly; file disks match the pool whose target
// directory contains the file.
func DiskPools(dom *libvirtxml.Domain, pools []Pool) sets.Set[string] {
	out := sets.New[string]()
	if dom.Devices == nil {
		return out
	}
	for _, disk := range dom.Devices.Disks {
		if disk.Source == nil {
			continue
		}
		switch {
		case disk.Source.Volume != nil:
			out.Insert(disk.Source.Volume.Pool)
		case disk.Source.File != nil:
			if name, ok := poolForPath(disk.Source.File.File, pools); ok {
				out.Insert(name)
			}
		case disk.Source.Block != nil:
			if name, ok := poolForPath(disk.Source.Block.Dev, pools); ok {
				out.Insert(name)
			}
		}
	}
	out.Delete("")
	return out
}

func poolForPath(path string, pools []Pool) (string, bool) {
	if path == "" {
		return "", false
	}
	dir := filepath.Dir(filepath.Clean(path))
	best, bestLen := "", -1
	for _, p := range pools {
		if p.Path == "" || p.Path == "." {
			continue
		}
		if dir == p.Path || strings.HasPrefix(dir, p.Path+string(filepath.Separator)) {
			if len(p.Path) > bestLen {
				best, bestLen = p.Name, len(p.Path)
			}
		}
	}
	return best, bestLen >= 0
}
