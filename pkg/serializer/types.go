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

import "context"

// Serializer writes a document to some destination.
//
// The context bounds implementations that perform network I/O (ConfigMap
// writes).
type Serializer interface {
	Serialize(ctx context.Context, doc any) error
}

// Closer is implemented by serializers that hold resources such as open
// files.
type Closer interface {
	Close() error
}

// Tabular is implemented by documents with a natural row layout. The table
// format renders them as columns instead of flattened key paths.
type Tabular interface {
	TableHeader() []string
	TableRows() [][]string
}

// Headed is implemented by documents that carry a header. ConfigMap writes
// use it to label the ConfigMap.
type Headed interface {
	HeaderKind() string
	HeaderMetadata() map[string]string
}
