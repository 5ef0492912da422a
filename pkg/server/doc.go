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

// Package server implements the vgraph HTTP API served in serve mode.
//
// # Endpoints
//
//	GET /                       name, version, readiness and routes
//	GET /health                 liveness, always 200
//	GET /ready                  200 once started and a snapshot exists
//	GET /metrics                Prometheus metrics
//	GET /v1/snapshot            latest snapshot
//	GET /v1/snapshot/diff       added, removed and changed entities
//	GET /v1/entities/{id}       entities with the given id
//
// API routes accept ?format=json|yaml|table and go through middleware for
// request ids (X-Request-Id), token bucket rate limiting
// (golang.org/x/time/rate), panic recovery, debug logging and request
// metrics. Errors are returned as ErrorResponse with the pkg/errors code.
//
// # Usage
//
//	store := repository.NewMemoryStore(version, source)
//	s := server.New(
//	    server.WithName("vgraph"),
//	    server.WithVersion(version),
//	    server.WithHandler(server.SnapshotHandlers(store)),
//	    server.WithReadiness(store.Ready),
//	)
//	if err := s.Start(ctx); err != nil {
//	    return err
//	}
//
// # Configuration
//
// NewConfig reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment.
// Set SHUTDOWN_TIMEOUT_SECONDS to the pod termination grace period so
// in-flight requests finish before the process exits.
package server
