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
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/vgraph/pkg/defaults"
	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/k8s/client"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap targets: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	// FieldManager is the server-side apply field manager of vgraph writes.
	FieldManager = "vgraph"
)

// ConfigMapWriter writes serialized documents to a Kubernetes ConfigMap with
// server-side apply, creating it when missing.
type ConfigMapWriter struct {
	client    client.Interface
	namespace string
	name      string
	format    Format
}

// NewConfigMapWriter returns a writer for namespace/name. A nil client is
// resolved with client.GetKubeClient on first write.
func NewConfigMapWriter(c client.Interface, namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		client:    c,
		namespace: namespace,
		name:      name,
		format:    normalizeFormat(format),
	}
}

// Serialize applies a ConfigMap holding:
//   - data.snapshot.{json|yaml|txt}: the serialized document
//   - data.format: the format used
//   - data.timestamp: the document timestamp, or now
func (w *ConfigMapWriter) Serialize(ctx context.Context, doc any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs := w.client
	if cs == nil {
		var err error
		cs, _, err = client.GetKubeClient()
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to get kubernetes client", err)
		}
	}

	content, err := Marshal(w.format, doc)
	if err != nil {
		return err
	}

	kind, version, timestamp := "Snapshot", "unknown", time.Now().UTC().Format(time.RFC3339)
	if h, ok := doc.(Headed); ok {
		if k := h.HeaderKind(); k != "" {
			kind = k
		}
		md := h.HeaderMetadata()
		if v := md["version"]; v != "" {
			version = v
		}
		if ts := md["timestamp"]; ts != "" {
			timestamp = ts
		}
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "vgraph",
			"app.kubernetes.io/component": strings.ToLower(kind),
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			"snapshot." + w.format.Extension(): string(content),
			"format":                           string(w.format),
			"timestamp":                        timestamp,
		})

	slog.Debug("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"bytes", len(content))

	if _, err := cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	}); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeUnavailable, "failed to apply ConfigMap", err,
			map[string]any{"namespace": w.namespace, "name": w.name})
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ParseConfigMapURI splits cm://namespace/name.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
