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

package defaults

import "time"

// Discovery settings for snapshot runs.
const (
	// DiscoveryWorkers bounds the number of concurrent per-host and per-VM
	// inventory queries within one run.
	DiscoveryWorkers = 8

	// SnapshotTimeout is the default deadline of one snapshot run.
	SnapshotTimeout = 5 * time.Minute

	// SnapshotInterval is the default period between runs in serve mode.
	SnapshotInterval = 15 * time.Minute

	// MinSnapshotInterval is the smallest accepted serve mode period.
	MinSnapshotInterval = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second

	// ConfigMapReadTimeout is the timeout for reading group ConfigMaps.
	ConfigMapReadTimeout = 10 * time.Second
)

// Registry timeouts for OCI pushes.
const (
	// OCIPushTimeout bounds a single snapshot artifact push.
	OCIPushTimeout = 2 * time.Minute
)
