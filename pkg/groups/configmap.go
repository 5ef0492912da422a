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

package groups

import (
	"context"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/vgraph/pkg/defaults"
	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/k8s/client"
)

// ConfigMapResolver reads group membership from a ConfigMap. Each data key is
// a host name; its value lists group names separated by commas or newlines.
// The ConfigMap is read on every lookup so edits apply to the next snapshot.
type ConfigMapResolver struct {
	client    client.Interface
	namespace string
	name      string
}

var _ Resolver = (*ConfigMapResolver)(nil)

// NewConfigMapResolver returns a resolver for namespace/name.
func NewConfigMapResolver(c client.Interface, namespace, name string) *ConfigMapResolver {
	return &ConfigMapResolver{client: c, namespace: namespace, name: name}
}

// FindGroupsByHostName implements Resolver. A missing ConfigMap yields no
// groups; other API errors are returned.
func (r *ConfigMapResolver) FindGroupsByHostName(ctx context.Context, hostName string) ([]Group, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := r.client.CoreV1().ConfigMaps(r.namespace).Get(readCtx, r.name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
			fmt.Sprintf("failed to read groups ConfigMap %s/%s", r.namespace, r.name), err,
			map[string]any{"host": hostName})
	}

	raw, ok := cm.Data[hostName]
	if !ok {
		return nil, nil
	}
	return ParseList(raw), nil
}

// ParseList splits a comma or newline separated list of group names.
func ParseList(raw string) []Group {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]Group, 0, len(fields))
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			out = append(out, Group{Name: name})
		}
	}
	return out
}
