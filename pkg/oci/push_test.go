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
	"context"
	"encoding/json"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/memory"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

func TestPushTo(t *testing.T) {
	ctx := context.Background()
	dst := memory.New()
	payload := []byte(`{"kind":"Snapshot","entities":[]}`)

	desc, err := PushTo(ctx, Artifact{
		Name:        "snapshot.json",
		Content:     payload,
		Annotations: map[string]string{ociv1.AnnotationVersion: "v0.1.0"},
	}, "latest", dst)
	if err != nil {
		t.Fatalf("PushTo failed: %v", err)
	}

	resolved, err := dst.Resolve(ctx, "latest")
	if err != nil {
		t.Fatalf("tag not found in destination: %v", err)
	}
	if resolved.Digest != desc.Digest {
		t.Errorf("tag resolves to %s, want %s", resolved.Digest, desc.Digest)
	}

	raw, err := content.FetchAll(ctx, dst, desc)
	if err != nil {
		t.Fatalf("fetch manifest: %v", err)
	}
	var manifest ociv1.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if manifest.ArtifactType != ArtifactType {
		t.Errorf("artifactType = %s", manifest.ArtifactType)
	}
	if manifest.Annotations[ociv1.AnnotationVersion] != "v0.1.0" {
		t.Errorf("missing version annotation: %v", manifest.Annotations)
	}
	if len(manifest.Layers) != 1 {
		t.Fatalf("expected one layer, got %d", len(manifest.Layers))
	}
	layer := manifest.Layers[0]
	if layer.MediaType != SnapshotMediaType || layer.Annotations[ociv1.AnnotationTitle] != "snapshot.json" {
		t.Errorf("unexpected layer %+v", layer)
	}

	body, err := content.FetchAll(ctx, dst, layer)
	if err != nil {
		t.Fatalf("fetch layer: %v", err)
	}
	if string(body) != string(payload) {
		t.Errorf("layer content = %s", body)
	}
}

func TestPushTo_Reproducible(t *testing.T) {
	ctx := context.Background()
	a := Artifact{
		Name:        "snapshot.json",
		Content:     []byte("{}"),
		Annotations: map[string]string{ociv1.AnnotationCreated: "2026-01-01T00:00:00Z"},
	}

	d1, err := PushTo(ctx, a, "v1", memory.New())
	if err != nil {
		t.Fatalf("first push: %v", err)
	}
	d2, err := PushTo(ctx, a, "v1", memory.New())
	if err != nil {
		t.Fatalf("second push: %v", err)
	}
	if d1.Digest != d2.Digest {
		t.Errorf("digests differ: %s vs %s", d1.Digest, d2.Digest)
	}
}

func TestPushValidation(t *testing.T) {
	ctx := context.Background()

	_, err := Push(ctx, Reference{Registry: "ghcr.io", Repository: "nvidia/vgraph"}, Artifact{Name: "s.json"}, PushOptions{})
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST for missing tag, got %v", err)
	}

	_, err = PushTo(ctx, Artifact{}, "v1", memory.New())
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST for unnamed artifact, got %v", err)
	}
}

func TestStripProtocol(t *testing.T) {
	tests := map[string]string{
		"https://ghcr.io":       "ghcr.io",
		"http://localhost:5000": "localhost:5000",
		"registry.example.com":  "registry.example.com",
	}
	for in, want := range tests {
		if got := stripProtocol(in); got != want {
			t.Errorf("stripProtocol(%q) = %q, want %q", in, got, want)
		}
	}
}
