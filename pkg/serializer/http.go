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
	"log/slog"
	"net/http"
)

var contentTypes = map[Format]string{
	FormatJSON:  "application/json",
	FormatYAML:  "application/yaml",
	FormatTable: "text/plain; charset=utf-8",
}

// RespondJSON writes a JSON response with the given status code and data.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	Respond(w, FormatJSON, statusCode, data)
}

// Respond encodes data in format before writing headers so an encoding
// failure never produces a partial response.
func Respond(w http.ResponseWriter, format Format, statusCode int, data any) {
	format = normalizeFormat(format)
	body, err := Marshal(format, data)
	if err != nil {
		slog.Error("response encoding failed", "format", format, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// FormatFromRequest picks the response format from the "format" query
// parameter, then the Accept header. JSON is the default.
func FormatFromRequest(r *http.Request) Format {
	if f := Format(r.URL.Query().Get("format")); f != "" && !f.IsUnknown() {
		return f
	}
	for f, ct := range contentTypes {
		if f != FormatJSON && r.Header.Get("Accept") == ct {
			return f
		}
	}
	return FormatJSON
}
