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
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/NVIDIA/vgraph/pkg/defaults"
	"github.com/NVIDIA/vgraph/pkg/entity"
	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
	"github.com/NVIDIA/vgraph/pkg/groups"
	"github.com/NVIDIA/vgraph/pkg/inventory"
	"github.com/NVIDIA/vgraph/pkg/repository"
)

// Builder walks an inventory source and publishes the resulting topology
// graph as one snapshot. A Builder keeps no state across runs and may be
// reused.
type Builder struct {
	// Source is the inventory to walk. Required.
	Source inventory.Source

	// Groups resolves VM group tags. If nil, groups.Empty is used.
	Groups groups.Resolver

	// Repository receives the snapshot of a successful run. Required by Run.
	Repository repository.Repository

	// Logger receives run diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Workers bounds concurrent inventory queries. Values <= 0 mean
	// defaults.DiscoveryWorkers.
	Workers int

	// DeduplicateDatastores drops repeated datastore entities, keeping the
	// first occurrence. A datastore shared by several hosts is otherwise
	// emitted once per host.
	DeduplicateDatastores bool
}

// Option configures a Builder created with NewBuilder.
type Option func(*Builder)

// WithGroups sets the group resolver.
func WithGroups(r groups.Resolver) Option {
	return func(b *Builder) { b.Groups = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.Logger = l }
}

// WithWorkers sets the query concurrency.
func WithWorkers(n int) Option {
	return func(b *Builder) { b.Workers = n }
}

// WithDatastoreDeduplication toggles datastore deduplication.
func WithDatastoreDeduplication(enabled bool) Option {
	return func(b *Builder) { b.DeduplicateDatastores = enabled }
}

// NewBuilder returns a builder with datastore deduplication enabled.
func NewBuilder(src inventory.Source, repo repository.Repository, opts ...Option) *Builder {
	b := &Builder{
		Source:                src,
		Repository:            repo,
		DeduplicateDatastores: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

func (b *Builder) workers() int {
	if b.Workers <= 0 {
		return defaults.DiscoveryWorkers
	}
	return b.Workers
}

func (b *Builder) resolver() groups.Resolver {
	if b.Groups == nil {
		return groups.Empty
	}
	return b.Groups
}

// Run builds a snapshot and publishes it exactly once. Nothing is published
// when the host listing fails or ctx is done before the publish.
func (b *Builder) Run(ctx context.Context) error {
	if b.Repository == nil {
		return apperrors.New(apperrors.ErrCodeInternal, "snapshot builder has no repository")
	}

	start := time.Now()
	defer func() {
		snapshotRunDuration.Observe(time.Since(start).Seconds())
	}()

	logger := b.logger().With(slog.String("runId", uuid.NewString()))

	entities, err := b.build(ctx, logger)
	if err != nil {
		snapshotRunsTotal.WithLabelValues("discovery_failed").Inc()
		return err
	}

	if err := b.Repository.Publish(ctx, entities); err != nil {
		snapshotRunsTotal.WithLabelValues("publish_failed").Inc()
		logger.Error("failed to publish snapshot", slog.String("error", err.Error()))
		return apperrors.Wrap(apperrors.ErrCodePublishFailed, "failed to publish snapshot", err)
	}

	counts := entity.CountByKind(entities)
	for _, k := range entity.Kinds() {
		snapshotEntities.WithLabelValues(string(k)).Set(float64(counts[k]))
	}
	snapshotRunsTotal.WithLabelValues("success").Inc()

	logger.Info("snapshot published",
		slog.Int("vms", counts[entity.KindVM]),
		slog.Int("hosts", counts[entity.KindHost]),
		slog.Int("datastores", counts[entity.KindDatastore]),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Build walks the inventory and returns the ordered entity list without
// publishing it: VMs, then hosts, then datastores.
func (b *Builder) Build(ctx context.Context) ([]entity.MonitoredEntity, error) {
	return b.build(ctx, b.logger())
}

func (b *Builder) build(ctx context.Context, logger *slog.Logger) ([]entity.MonitoredEntity, error) {
	if b.Source == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, "snapshot builder has no inventory source")
	}

	logger.Debug("starting topology snapshot", slog.Int("workers", b.workers()))

	hosts, err := b.Source.ListHosts(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, interrupted(ctx.Err())
		}
		logger.Error("failed to list hosts", slog.String("error", err.Error()))
		return nil, apperrors.Wrap(apperrors.ErrCodeDiscoveryFailed, "failed to list hosts", err)
	}

	// Per host VMs and datastores. Each task writes only its own slot.
	hostVMs := make([][]inventory.VM, len(hosts))
	hostDatastores := make([][]inventory.Datastore, len(hosts))

	g := new(errgroup.Group)
	g.SetLimit(b.workers())
	for i, h := range hosts {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			hostVMs[i] = fold(logger, "host_vms",
				inventory.Query(b.Source.ListHostVMs(ctx, h)), "host", h.Name)
			hostDatastores[i] = fold(logger, "host_datastores",
				inventory.Query(b.Source.ListHostDatastores(ctx, h)), "host", h.Name)
			return nil
		})
	}
	_ = g.Wait()
	if ctx.Err() != nil {
		return nil, interrupted(ctx.Err())
	}

	var vms []inventory.VM
	for _, list := range hostVMs {
		vms = append(vms, list...)
	}

	// Per VM datastores, owner and groups.
	idx := newHostIndex(hosts)
	resolver := b.resolver()
	vmEntities := make([]*entity.MonitoredEntity, len(vms))

	g = new(errgroup.Group)
	g.SetLimit(b.workers())
	for i, vm := range vms {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			vmEntities[i] = b.mapVM(ctx, logger, resolver, idx, vm)
			return nil
		})
	}
	_ = g.Wait()
	if ctx.Err() != nil {
		return nil, interrupted(ctx.Err())
	}

	out := make([]entity.MonitoredEntity, 0, len(vms)+2*len(hosts))
	for _, e := range vmEntities {
		if e != nil {
			out = append(out, *e)
		}
	}

	for i, h := range hosts {
		e, err := MapHost(h, DatastoreNames(hostDatastores[i]))
		if err != nil {
			skip(logger, entity.KindHost, h.Ref, err)
			continue
		}
		out = append(out, e)
	}

	seen := sets.New[string]()
	for _, list := range hostDatastores {
		for _, ds := range list {
			e, err := MapDatastore(ds)
			if err != nil {
				skip(logger, entity.KindDatastore, ds.Ref, err)
				continue
			}
			if b.DeduplicateDatastores {
				if seen.Has(e.ID) {
					continue
				}
				seen.Insert(e.ID)
			}
			out = append(out, e)
		}
	}

	if ctx.Err() != nil {
		return nil, interrupted(ctx.Err())
	}

	logger.Debug("topology snapshot built",
		slog.Int("hosts", len(hosts)),
		slog.Int("vms", len(vms)),
		slog.Int("entities", len(out)))
	return out, nil
}

func (b *Builder) mapVM(ctx context.Context, logger *slog.Logger, resolver groups.Resolver, idx hostIndex, vm inventory.VM) *entity.MonitoredEntity {
	datastores := fold(logger, "vm_datastores",
		inventory.Query(b.Source.ListVMDatastores(ctx, vm)), "vm", vm.Name)

	var owner *inventory.Host
	if h, ok := idx.owner(vm); ok {
		owner = &h
	}

	groupNames := sets.New[string]()
	if name := strings.TrimSpace(vm.GuestHostName); name != "" {
		records := fold(logger, "groups",
			inventory.Query(resolver.FindGroupsByHostName(ctx, name)), "vm", vm.Name)
		groupNames = groups.Names(records)
	}

	e, err := MapVM(vm, owner, DatastoreNames(datastores), groupNames)
	if err != nil {
		skip(logger, entity.KindVM, vm.Ref, err)
		return nil
	}
	return &e
}

// fold counts a failed sub-query and folds it into an empty list.
func fold[T any](logger *slog.Logger, query string, r inventory.Result[T], attrs ...any) []T {
	if r.Failed() {
		snapshotPartialFailures.WithLabelValues(query).Inc()
	}
	return r.OrEmpty(logger, append([]any{slog.String("query", query)}, attrs...)...)
}

func skip(logger *slog.Logger, kind entity.Kind, ref inventory.Ref, err error) {
	snapshotSkippedEntities.WithLabelValues(string(kind)).Inc()
	logger.Warn("skipping entity",
		slog.String("kind", string(kind)),
		slog.String("ref", ref.String()),
		slog.String("code", string(apperrors.CodeOf(err))),
		slog.String("error", err.Error()))
}

// interrupted wraps a context error. A deadline maps to TIMEOUT, any other
// cancellation to DISCOVERY_FAILED.
func interrupted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, "snapshot run timed out", err)
	}
	return apperrors.Wrap(apperrors.ErrCodeDiscoveryFailed, "snapshot run canceled", err)
}
