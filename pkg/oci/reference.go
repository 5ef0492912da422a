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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

// URIScheme is the URI scheme for OCI registry targets (oci://ghcr.io/org/repo:tag).
const URIScheme = "oci://"

// Reference is a parsed registry target.
type Reference struct {
	// Registry is the registry host, for example "ghcr.io" or "localhost:5000".
	Registry string
	// Repository is the repository path, for example "nvidia/vgraph-snapshots".
	Repository string
	// Tag is empty when the target did not name one; callers apply a default.
	Tag string
}

// IsOCITarget reports whether target uses the oci:// scheme.
func IsOCITarget(target string) bool {
	return strings.HasPrefix(strings.TrimSpace(target), URIScheme)
}

// ParseReference parses an oci:// target.
func ParseReference(target string) (Reference, error) {
	target = strings.TrimSpace(target)
	if !IsOCITarget(target) {
		return Reference{}, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("OCI target %q must start with %s", target, URIScheme))
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return Reference{}, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}

	r := Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
	}
	if tagged, ok := ref.(reference.Tagged); ok {
		r.Tag = tagged.Tag()
	}
	if err := ValidateRegistryReference(r.Registry, r.Repository); err != nil {
		return Reference{}, err
	}
	return r, nil
}

// ValidateRegistryReference checks that registry and repository form a valid
// image name. An http(s):// prefix on the registry is ignored.
func ValidateRegistryReference(registry, repository string) error {
	name := stripProtocol(registry) + "/" + repository
	if _, err := reference.ParseNormalizedNamed(name); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid registry reference %q", name), err)
	}
	return nil
}

// String returns the oci:// form of r.
func (r Reference) String() string {
	return URIScheme + r.ImageReference()
}

// ImageReference returns registry/repository[:tag].
func (r Reference) ImageReference() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of r with tag.
func (r Reference) WithTag(tag string) Reference {
	r.Tag = tag
	return r
}

func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	return strings.TrimPrefix(registry, "http://")
}
