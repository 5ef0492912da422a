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

package serializer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

type headedDoc struct {
	Items []string `json:"items"`
}

func (headedDoc) HeaderKind() string { return "Snapshot" }
func (headedDoc) HeaderMetadata() map[string]string {
	return map[string]string{"version": "v0.3.0", "timestamp": "2026-01-02T03:04:05Z"}
}

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{name: "valid URI", uri: "cm://monitoring/vgraph-snapshot", wantNamespace: "monitoring", wantName: "vgraph-snapshot"},
		{name: "valid URI with spaces", uri: "cm://monitoring / vgraph-snapshot ", wantNamespace: "monitoring", wantName: "vgraph-snapshot"},
		{name: "missing scheme", uri: "monitoring/vgraph-snapshot", wantErr: true},
		{name: "wrong scheme", uri: "http://monitoring/vgraph-snapshot", wantErr: true},
		{name: "missing name", uri: "cm://monitoring/", wantErr: true},
		{name: "missing namespace", uri: "cm:///vgraph-snapshot", wantErr: true},
		{name: "missing separator", uri: "cm://monitoring", wantErr: true},
		{name: "empty URI", uri: "", wantErr: true},
		{name: "only scheme", uri: "cm://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			namespace, name, err := ParseConfigMapURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConfigMapURI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if namespace != tt.wantNamespace || name != tt.wantName {
				t.Errorf("ParseConfigMapURI() = %s/%s, want %s/%s", namespace, name, tt.wantNamespace, tt.wantName)
			}
		})
	}
}

func TestConfigMapWriter_Serialize(t *testing.T) {
	cs := fake.NewSimpleClientset()

	var applied corev1.ConfigMap
	var patchType types.PatchType
	cs.PrependReactor("patch", "configmaps", func(action k8stesting.Action) (bool, runtime.Object, error) {
		pa := action.(k8stesting.PatchAction)
		patchType = pa.GetPatchType()
		if err := json.Unmarshal(pa.GetPatch(), &applied); err != nil {
			return true, nil, err
		}
		return true, &applied, nil
	})

	w := NewConfigMapWriter(cs, "monitoring", "vgraph", FormatJSON)
	if err := w.Serialize(context.Background(), headedDoc{Items: []string{"a"}}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if patchType != types.ApplyPatchType {
		t.Errorf("expected server-side apply, got %s", patchType)
	}
	if applied.Name != "vgraph" || applied.Namespace != "monitoring" {
		t.Errorf("unexpected target %s/%s", applied.Namespace, applied.Name)
	}
	if applied.Data["format"] != "json" {
		t.Errorf("format = %q", applied.Data["format"])
	}
	if applied.Data["timestamp"] != "2026-01-02T03:04:05Z" {
		t.Errorf("timestamp = %q", applied.Data["timestamp"])
	}
	var doc headedDoc
	if err := json.Unmarshal([]byte(applied.Data["snapshot.json"]), &doc); err != nil {
		t.Fatalf("snapshot.json is not valid JSON: %v", err)
	}
	if applied.Labels["app.kubernetes.io/version"] != "v0.3.0" ||
		applied.Labels["app.kubernetes.io/component"] != "snapshot" {
		t.Errorf("unexpected labels %v", applied.Labels)
	}
}

func TestConfigMapWriter_ApplyError(t *testing.T) {
	cs := fake.NewSimpleClientset()
	cs.PrependReactor("patch", "configmaps", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("forbidden")
	})

	w := NewConfigMapWriter(cs, "monitoring", "vgraph", FormatYAML)
	if err := w.Serialize(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected apply error")
	}
}

func TestNewConfigMapWriter_UnknownFormat(t *testing.T) {
	w := NewConfigMapWriter(nil, "default", "test", Format("unknown"))
	if w.format != FormatJSON {
		t.Errorf("format = %s, want json", w.format)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
