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

package snapshotter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshot run metrics
	snapshotRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vgraph_snapshot_run_duration_seconds",
			Help:    "Time taken to build and publish a topology snapshot",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	snapshotRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgraph_snapshot_runs_total",
			Help: "Total number of snapshot runs",
		},
		[]string{"status"}, // success, discovery_failed, publish_failed
	)

	snapshotPartialFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgraph_snapshot_partial_failures_total",
			Help: "Inventory sub-queries that failed and were folded into an empty result",
		},
		[]string{"query"}, // host_vms, host_datastores, vm_datastores, groups
	)

	snapshotSkippedEntities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vgraph_snapshot_skipped_entities_total",
			Help: "Entities dropped because their identity could not be resolved",
		},
		[]string{"kind"},
	)

	snapshotEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vgraph_snapshot_entities",
			Help: "Number of entities in the last published snapshot",
		},
		[]string{"kind"},
	)
)
