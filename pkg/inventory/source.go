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

package inventory

import (
	"context"
	"errors"
)

// Source is a read-only view of the inventory under one root scope.
// Implementations must be safe for concurrent use.
type Source interface {
	// ListHosts returns every host under the root scope. A failure here is
	// fatal for a snapshot run.
	ListHosts(ctx context.Context) ([]Host, error)

	// ListHostVMs returns the VMs placed on host.
	ListHostVMs(ctx context.Context, host Host) ([]VM, error)

	// ListHostDatastores returns the datastores mounted by host.
	ListHostDatastores(ctx context.Context, host Host) ([]Datastore, error)

	// ListVMDatastores returns the datastores backing vm.
	ListVMDatastores(ctx context.Context, vm VM) ([]Datastore, error)
}

// ErrConnectivity matches any error caused by the source being unreachable.
var ErrConnectivity = errors.New("inventory source unreachable")

// ConnectivityError records the scope of a failed call to the source system.
type ConnectivityError struct {
	Scope string
	Err   error
}

// Unreachable wraps err as a ConnectivityError for scope.
func Unreachable(scope string, err error) error {
	return &ConnectivityError{Scope: scope, Err: err}
}

func (e *ConnectivityError) Error() string {
	if e.Err == nil {
		return ErrConnectivity.Error() + ": " + e.Scope
	}
	return ErrConnectivity.Error() + ": " + e.Scope + ": " + e.Err.Error()
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConnectivity) hold for every ConnectivityError.
func (e *ConnectivityError) Is(target error) bool {
	return target == ErrConnectivity
}
