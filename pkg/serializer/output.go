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
	"strings"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/k8s/client"
)

// Open returns a serializer for target:
//   - "" or "-": stdout
//   - cm://namespace/name: ConfigMap (kube may be nil)
//   - anything else: a file path
//
// The caller closes the result when it implements Closer.
func Open(format Format, target string, kube client.Interface) (Serializer, error) {
	target = strings.TrimSpace(target)
	switch {
	case target == "" || target == "-":
		return NewStdoutWriter(format), nil
	case strings.HasPrefix(target, ConfigMapURIScheme):
		namespace, name, err := ParseConfigMapURI(target)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid output target", err)
		}
		return NewConfigMapWriter(kube, namespace, name, format), nil
	default:
		w, err := NewFileWriter(format, target)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}
