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

package oci

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

const (
	// ArtifactType identifies vgraph snapshot artifacts.
	ArtifactType = "application/vnd.nvidia.vgraph.snapshot"

	// SnapshotMediaType is the layer media type of a JSON snapshot.
	SnapshotMediaType = "application/vnd.nvidia.vgraph.snapshot.v1+json"
)

// Artifact is a single-file payload pushed as one layer.
type Artifact struct {
	// Name is the file name recorded in the layer title annotation.
	Name string
	// MediaType defaults to SnapshotMediaType.
	MediaType string
	// Content is the file body.
	Content []byte
	// Annotations are manifest annotations.
	Annotations map[string]string
}

// PushOptions configures the registry connection.
type PushOptions struct {
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PushResult contains the result of a successful push.
type PushResult struct {
	// Digest is the manifest digest.
	Digest string
	// Reference is registry/repository:tag.
	Reference string
}

// Push packs a and pushes it to the registry named by ref. ref must carry a
// tag.
func Push(ctx context.Context, ref Reference, a Artifact, opts PushOptions) (*PushResult, error) {
	if ref.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to push OCI artifact")
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", stripProtocol(ref.Registry), ref.Repository))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := PushTo(ctx, a, ref.Tag, repo)
	if err != nil {
		return nil, err
	}
	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: ref.ImageReference(),
	}, nil
}

// PushTo packs a into an in-memory store, tags the manifest and copies it to
// dst under the same tag.
func PushTo(ctx context.Context, a Artifact, tag string, dst oras.Target) (ociv1.Descriptor, error) {
	if a.Name == "" {
		return ociv1.Descriptor{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "artifact name is required")
	}
	mediaType := a.MediaType
	if mediaType == "" {
		mediaType = SnapshotMediaType
	}

	store := memory.New()

	layer := content.NewDescriptorFromBytes(mediaType, a.Content)
	layer.Annotations = map[string]string{ociv1.AnnotationTitle: a.Name}
	if err := store.Push(ctx, layer, bytes.NewReader(a.Content)); err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to stage artifact layer", err)
	}

	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: a.Annotations,
	})
	if err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}
	if err := store.Tag(ctx, manifest, tag); err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest", err)
	}

	desc, err := oras.Copy(ctx, store, tag, dst, tag, oras.DefaultCopyOptions)
	if err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push artifact to registry", err)
	}
	return desc, nil
}

// createAuthClient returns a client using Docker credential helpers, with
// optional TLS verification bypass.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	c := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		c.Credential = credentials.Credential(credStore)
	}
	return c
}
