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

// Package logging configures log/slog for vgraph binaries.
//
// Records are JSON on stderr and always carry the module and version
// attributes, so output from the snapshot command, the serve loop and the
// HTTP server can be told apart after aggregation:
//
//	{"time":"...","level":"WARN","msg":"inventory query failed, continuing with empty result",
//	 "module":"vgraph","version":"v0.3.0","runId":"...","query":"host_vms","host":"esx-02",
//	 "code":"PARTIAL_ENUMERATION_FAILURE","error":"..."}
//
// Debug level adds the source location of each record.
//
// # Levels
//
// ParseLogLevel accepts debug, info, warn (or warning) and error in any case.
// Anything else is info.
//
// # Usage
//
// The CLI installs the default logger before any command runs:
//
//	logging.SetDefaultStructuredLoggerWithLevel("vgraph", version, cmd.String("log-level"))
//
// Programs without flags read the level from LOG_LEVEL:
//
//	logging.SetDefaultStructuredLogger("vgraph", version)
//
// Components take a *slog.Logger and fall back to slog.Default(). Libraries
// that want a *log.Logger, such as net/http.Server.ErrorLog, get one from
// NewLogLogger that writes through the default handler.
package logging
