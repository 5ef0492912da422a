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

package server

import (
	"net/http"

	"github.com/NVIDIA/vgraph/pkg/entity"
	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/repository"
	"github.com/NVIDIA/vgraph/pkg/serializer"
)

// SnapshotStore is the read side of the in-memory repository.
type SnapshotStore interface {
	Latest() (*repository.Snapshot, bool)
	Diff() (*repository.SnapshotDiff, bool)
	Find(id string) []entity.MonitoredEntity
}

// EntitiesResponse is the body of GET /v1/entities/{id}.
type EntitiesResponse struct {
	ID       string                   `json:"id" yaml:"id"`
	Entities []entity.MonitoredEntity `json:"entities" yaml:"entities"`
}

// SnapshotHandlers returns the read API over store:
//
//	GET /v1/snapshot          latest snapshot (?format=json|yaml|table)
//	GET /v1/snapshot/diff     change against the previous snapshot
//	GET /v1/entities/{id}     entities with the id (?kind=vm|host|datastore)
func SnapshotHandlers(store SnapshotStore) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /v1/snapshot": func(w http.ResponseWriter, r *http.Request) {
			snap, ok := store.Latest()
			if !ok {
				writeNoSnapshot(w, r)
				return
			}
			serializer.Respond(w, serializer.FormatFromRequest(r), http.StatusOK, snap)
		},
		"GET /v1/snapshot/diff": func(w http.ResponseWriter, r *http.Request) {
			diff, ok := store.Diff()
			if !ok {
				writeNoSnapshot(w, r)
				return
			}
			serializer.Respond(w, serializer.FormatFromRequest(r), http.StatusOK, diff)
		},
		"GET /v1/entities/{id}": func(w http.ResponseWriter, r *http.Request) {
			id := r.PathValue("id")

			var kind entity.Kind
			if k := r.URL.Query().Get("kind"); k != "" {
				kind = entity.Kind(k)
				if !kind.IsValid() {
					WriteError(w, r, http.StatusBadRequest, apperrors.ErrCodeInvalidRequest,
						"unknown entity kind", false, map[string]any{"kind": k, "supported": entity.Kinds()})
					return
				}
			}

			var found []entity.MonitoredEntity
			for _, e := range store.Find(id) {
				if kind == "" || e.Kind == kind {
					found = append(found, e)
				}
			}
			if len(found) == 0 {
				WriteError(w, r, http.StatusNotFound, apperrors.ErrCodeNotFound,
					"entity not found", false, map[string]any{"id": id})
				return
			}
			serializer.Respond(w, serializer.FormatFromRequest(r), http.StatusOK,
				EntitiesResponse{ID: id, Entities: found})
		},
	}
}

func writeNoSnapshot(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, apperrors.ErrCodeNotFound,
		"no snapshot has been published yet", true, nil)
}
