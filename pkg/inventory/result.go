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

package inventory

import (
	"log/slog"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

// Result is the outcome of one inventory sub-query.
type Result[T any] struct {
	Items []T
	Err   error
}

// Query captures the return values of a sub-query.
func Query[T any](items []T, err error) Result[T] {
	return Result[T]{Items: items, Err: err}
}

// Failed reports whether the sub-query returned an error.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// OrEmpty folds a failed sub-query into an empty list. The failure is logged
// at warn level with attrs (typically the query name and its subject).
// Items returned alongside an error are discarded.
func (r Result[T]) OrEmpty(logger *slog.Logger, attrs ...any) []T {
	if r.Err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		args := append([]any{}, attrs...)
		args = append(args,
			slog.String("code", string(apperrors.ErrCodePartialEnumeration)),
			slog.String("error", r.Err.Error()),
		)
		logger.Warn("inventory query failed, continuing with empty result", args...)
		return []T{}
	}
	if r.Items == nil {
		return []T{}
	}
	return r.Items
}
