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

// Package serializer encodes vgraph documents as JSON, YAML or tables and
// writes them to stdout, files, Kubernetes ConfigMaps or HTTP responses.
//
// # Formats
//
// JSON and YAML are indented encodings of the document. The table format
// renders documents implementing Tabular as columns (the snapshot lists one
// entity per row) and flattens anything else into FIELD/VALUE pairs.
//
// # Destinations
//
// Open picks a destination from a target string:
//
//	s, err := serializer.Open(serializer.FormatYAML, "cm://monitoring/vgraph", nil)
//	if err != nil {
//	    return err
//	}
//	if c, ok := s.(serializer.Closer); ok {
//	    defer c.Close()
//	}
//	err = s.Serialize(ctx, snapshot)
//
// ConfigMap writes use server-side apply with the "vgraph" field manager and
// store the payload under snapshot.{json|yaml|txt}.
//
// For HTTP responses, Respond buffers the encoding before writing headers:
//
//	serializer.Respond(w, serializer.FormatFromRequest(r), http.StatusOK, snapshot)
package serializer
