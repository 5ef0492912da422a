// Package entity defines the monitored entity graph emitted by a snapshot run.
//
// A MonitoredEntity is the monitoring-facing view of one managed object in the
// virtualized datacenter: a virtual machine, a hypervisor host or a datastore.
// Entities carry a stable identity, a display label, the opaque vendor
// reference used to correlate back to the source platform, the set of
// identities they depend on, and the set of groups they belong to.
//
// Dependency edges point from the dependent entity to the entity it depends on:
//
//	vm "web-01"     -> datastore "ds-ssd-01", host "esx-01.lab"
//	host "esx-01.lab" -> datastore "ds-ssd-01"
//	datastore "ds-ssd-01" -> (none)
//
// Entities are values. They are built once through New, which normalizes the
// dependency and group sets into sorted, duplicate-free slices, and are not
// mutated afterwards.
package entity
