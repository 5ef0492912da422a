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
	"io"
	"strings"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/k8s/client"
	"github.com/NVIDIA/vgraph/pkg/oci"
	"github.com/NVIDIA/vgraph/pkg/serializer"
)

// Options configures Open.
type Options struct {
	// Format of serialized output. Ignored for OCI targets, which are JSON.
	Format serializer.Format

	// Version and Source are stamped into every snapshot header.
	Version string
	Source  string

	// Kube is used for cm:// targets; nil resolves the default client.
	Kube client.Interface

	// Push configures oci:// targets.
	Push oci.PushOptions
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a repository for target:
//   - oci://registry/repository[:tag]: OCIRepository
//   - cm://namespace/name, a file path, "" or "-": SerializerRepository
//
// The returned closer is never nil.
func Open(target string, opts Options) (Repository, io.Closer, error) {
	target = strings.TrimSpace(target)
	if oci.IsOCITarget(target) {
		ref, err := oci.ParseReference(target)
		if err != nil {
			return nil, nopCloser{}, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid output target", err)
		}
		return NewOCIRepository(ref, opts.Push, opts.Version, opts.Source), nopCloser{}, nil
	}

	ser, err := serializer.Open(opts.Format, target, opts.Kube)
	if err != nil {
		return nil, nopCloser{}, err
	}
	repo := NewSerializerRepository(ser, opts.Version, opts.Source)
	return repo, repo, nil
}
