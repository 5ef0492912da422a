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
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/sets"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

// Group is a named group with free-form attributes.
type Group struct {
	Name       string            `json:"name" yaml:"name"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Resolver looks up the groups of a host name. An empty result is valid.
type Resolver interface {
	FindGroupsByHostName(ctx context.Context, hostName string) ([]Group, error)
}

// Names extracts the non-empty group names.
func Names(records []Group) sets.Set[string] {
	out := sets.New[string]()
	for _, g := range records {
		if name := strings.TrimSpace(g.Name); name != "" {
			out.Insert(name)
		}
	}
	return out
}

type empty struct{}

func (empty) FindGroupsByHostName(context.Context, string) ([]Group, error) {
	return nil, nil
}

// Empty resolves every host to no groups.
var Empty Resolver = empty{}

// Static is an immutable host name to groups index.
type Static struct {
	byHost map[string][]Group
}

var _ Resolver = (*Static)(nil)

// NewStatic builds a resolver from group name to member host names.
func NewStatic(members map[string][]string) *Static {
	defs := make(map[string]Definition, len(members))
	for name, hosts := range members {
		defs[name] = Definition{Hosts: hosts}
	}
	return newStatic(defs)
}

// Definition is one group in a groups file.
type Definition struct {
	Hosts      []string          `yaml:"hosts"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// File is the YAML layout read by LoadFile:
//
//	groups:
//	  web:
//	    hosts: [web-01, web-02]
//	    attributes:
//	      tier: frontend
type File struct {
	Groups map[string]Definition `yaml:"groups"`
}

// LoadFile reads a groups file.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound,
			fmt.Sprintf("failed to read groups file %s", path), err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse groups file %s", path), err)
	}
	return newStatic(f.Groups), nil
}

func newStatic(defs map[string]Definition) *Static {
	s := &Static{byHost: make(map[string][]Group)}
	// sorted so each host's group list is deterministic
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		def := defs[name]
		for _, host := range sets.List(sets.New(def.Hosts...)) {
			if host == "" {
				continue
			}
			s.byHost[host] = append(s.byHost[host], Group{
				Name:       name,
				Attributes: maps.Clone(def.Attributes),
			})
		}
	}
	return s
}

// FindGroupsByHostName implements Resolver.
func (s *Static) FindGroupsByHostName(ctx context.Context, hostName string) ([]Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.byHost[hostName]), nil
}
