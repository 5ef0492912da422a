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

// Package oci publishes snapshots as OCI artifacts with ORAS.
//
// A snapshot is pushed as a single layer (title annotation "snapshot.json",
// media type SnapshotMediaType) under an OCI 1.1 manifest whose artifact type
// is ArtifactType. Registries then keep a tagged history of topology
// snapshots that any OCI client can pull.
//
//	ref, err := oci.ParseReference("oci://ghcr.io/acme/topology:latest")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, ref, oci.Artifact{Name: "snapshot.json", Content: body}, oci.PushOptions{})
//
// Credentials come from the Docker configuration (~/.docker/config.json)
// through the ORAS credentials package.
package oci
