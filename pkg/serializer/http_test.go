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
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type testData struct {
	Message string `json:"message" yaml:"message"`
	Code    int    `json:"code" yaml:"code"`
}

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := testData{Message: "success", Code: 200}

	RespondJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var result testData
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result != data {
		t.Errorf("expected %+v, got %+v", data, result)
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondJSON(w, http.StatusOK, map[string]float64{"bad": math.Inf(1)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestRespondYAML(t *testing.T) {
	w := httptest.NewRecorder()

	Respond(w, FormatYAML, http.StatusCreated, testData{Message: "ok", Code: 1})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("unexpected Content-Type %s", ct)
	}
	if !strings.Contains(w.Body.String(), "message: ok") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestFormatFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		target string
		accept string
		want   Format
	}{
		{"default", "/v1/snapshot", "", FormatJSON},
		{"query yaml", "/v1/snapshot?format=yaml", "", FormatYAML},
		{"query unknown", "/v1/snapshot?format=xml", "", FormatJSON},
		{"accept yaml", "/v1/snapshot", "application/yaml", FormatYAML},
		{"query wins", "/v1/snapshot?format=table", "application/yaml", FormatTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			if got := FormatFromRequest(r); got != tt.want {
				t.Errorf("FormatFromRequest() = %s, want %s", got, tt.want)
			}
		})
	}
}
