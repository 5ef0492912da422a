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

package cli

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/vgraph/pkg/defaults"
	"github.com/NVIDIA/vgraph/pkg/repository"
	"github.com/NVIDIA/vgraph/pkg/scheduler"
	"github.com/NVIDIA/vgraph/pkg/serializer"
	"github.com/NVIDIA/vgraph/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Rediscover the inventory on an interval and serve the latest snapshot",
		Description: `Run a discovery pass immediately and then every --interval, keeping the
latest snapshot in memory and serving it over HTTP:

  GET /v1/snapshot         latest snapshot (?format=json|yaml|table)
  GET /v1/snapshot/diff    changes between the last two snapshots
  GET /v1/entities/{id}    entities with the given id (?kind=vm|host|datastore)
  GET /v1/status           scheduler status
  GET /health, /ready, /metrics

When --output is set every snapshot is also published there. Under systemd
readiness is reported after the first successful pass.`,
		Flags: slices.Concat(discoveryFlags(), outputFlags(false), []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Usage:   "Time between discovery passes",
				Sources: cli.EnvVars("VGRAPH_INTERVAL"),
				Value:   defaults.SnapshotInterval,
			},
			&cli.StringFlag{
				Name:    "address",
				Usage:   "Listen address",
				Sources: cli.EnvVars("VGRAPH_ADDRESS"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Listen port (default: $PORT or 8080)",
				Sources: cli.EnvVars("VGRAPH_PORT"),
			},
		}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			source := redactSource(cmd.String("inventory"))

			store := repository.NewMemoryStore(version, source)
			var repo repository.Repository = store

			if output := cmd.String("output"); output != "" {
				opts, oerr := repositoryOptions(cmd, format, source)
				if oerr != nil {
					return oerr
				}
				sink, closer, oerr := repository.Open(output, opts)
				if oerr != nil {
					return oerr
				}
				defer func() {
					if cerr := closer.Close(); cerr != nil {
						slog.Warn("failed to close output", "error", cerr)
					}
				}()
				repo = repository.Multi(store, sink)
			}

			d, err := openDiscovery(ctx, cmd, repo)
			if err != nil {
				return err
			}
			defer d.Close()

			var notifyOnce sync.Once
			sched, err := scheduler.New(d.builder, cmd.Duration("interval"),
				scheduler.WithTimeout(cmd.Duration("timeout")),
				scheduler.OnSuccess(func() {
					notifyOnce.Do(func() { sdNotify(daemon.SdNotifyReady) })
				}),
			)
			if err != nil {
				return err
			}

			cfg := server.NewConfig()
			if cmd.IsSet("address") {
				cfg.Address = cmd.String("address")
			}
			if cmd.IsSet("port") {
				cfg.Port = cmd.Int("port")
			}

			srv := server.New(
				server.WithConfig(cfg),
				server.WithName(name),
				server.WithVersion(version),
				server.WithHandler(server.SnapshotHandlers(store)),
				server.WithHandler(map[string]http.HandlerFunc{
					"GET /v1/status": func(w http.ResponseWriter, _ *http.Request) {
						serializer.RespondJSON(w, http.StatusOK, sched.Status())
					},
				}),
				server.WithReadiness(store.Ready),
			)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return sched.Start(gctx) })
			g.Go(func() error { return srv.Start(gctx) })

			err = g.Wait()
			sdNotify(daemon.SdNotifyStopping)
			return err
		},
	}
}

// sdNotify reports state to systemd. Outside systemd it is a no-op.
func sdNotify(state string) {
	if _, err := daemon.SdNotify(false, state); err != nil {
		slog.Debug("systemd notify failed", "state", state, "error", err)
	}
}
