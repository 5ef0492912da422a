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

package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"

	"github.com/NVIDIA/vgraph/pkg/defaults"
	"github.com/NVIDIA/vgraph/pkg/entity"
	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/header"
	"github.com/NVIDIA/vgraph/pkg/oci"
)

// SnapshotFileName is the artifact layer title of a pushed snapshot.
const SnapshotFileName = "snapshot.json"

// DefaultTag is pushed when the target names no tag.
const DefaultTag = "latest"

// OCIRepository pushes each snapshot as an OCI artifact.
type OCIRepository struct {
	ref     oci.Reference
	opts    oci.PushOptions
	version string
	source  string

	// target overrides the remote registry; used by tests.
	target oras.Target
}

var _ Repository = (*OCIRepository)(nil)

// NewOCIRepository returns a sink for ref. An untagged ref is pushed as
// DefaultTag.
func NewOCIRepository(ref oci.Reference, opts oci.PushOptions, version, source string) *OCIRepository {
	if ref.Tag == "" {
		ref = ref.WithTag(DefaultTag)
	}
	return &OCIRepository{ref: ref, opts: opts, version: version, source: source}
}

// Publish implements Repository.
func (r *OCIRepository) Publish(ctx context.Context, entities []entity.MonitoredEntity) error {
	pushCtx, cancel := context.WithTimeout(ctx, defaults.OCIPushTimeout)
	defer cancel()

	snap := NewSnapshot(entities, r.version, r.source)
	body, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode snapshot", err)
	}

	annotations := map[string]string{ociv1.AnnotationTitle: "vgraph topology snapshot"}
	for k, v := range map[string]string{
		ociv1.AnnotationCreated: snap.Metadata[header.MetadataTimestamp],
		ociv1.AnnotationVersion: r.version,
		ociv1.AnnotationSource:  r.source,
	} {
		if v != "" {
			annotations[k] = v
		}
	}
	artifact := oci.Artifact{
		Name:        SnapshotFileName,
		Content:     body,
		Annotations: annotations,
	}

	start := time.Now()
	if r.target != nil {
		if _, err := oci.PushTo(pushCtx, artifact, r.ref.Tag, r.target); err != nil {
			return err
		}
		return nil
	}

	res, err := oci.Push(pushCtx, r.ref, artifact, r.opts)
	if err != nil {
		return err
	}
	slog.Info("snapshot pushed",
		"reference", res.Reference,
		"digest", res.Digest,
		"duration", time.Since(start))
	return nil
}
