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

// Package scheduler runs snapshot builds on a fixed interval.
//
// Runs never overlap: the next run is scheduled one interval after the
// previous one finished. A failed run is logged and retried at the next tick.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/vgraph/pkg/defaults"
	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

// Runner performs one run. snapshotter.Builder implements it.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Status describes the most recent run.
type Status struct {
	Runs        int       `json:"runs"`
	Failures    int       `json:"failures"`
	LastRun     time.Time `json:"lastRun,omitempty"`
	LastSuccess time.Time `json:"lastSuccess,omitempty"`
	LastError   string    `json:"lastError,omitempty"`
}

// Scheduler invokes a Runner periodically.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	timeout  time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	onSuccess func()

	mu     sync.RWMutex
	status Status
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTimeout bounds every run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.timeout = d }
}

// WithClock replaces the wall clock, for tests.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// OnSuccess registers fn to be called after every successful run.
func OnSuccess(fn func()) Option {
	return func(s *Scheduler) { s.onSuccess = fn }
}

// New returns a scheduler. The interval must be at least
// defaults.MinSnapshotInterval.
func New(r Runner, interval time.Duration, opts ...Option) (*Scheduler, error) {
	if r == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "runner is required")
	}
	if interval < defaults.MinSnapshotInterval {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("interval %s is below the minimum of %s", interval, defaults.MinSnapshotInterval))
	}
	s := &Scheduler{
		runner:   r,
		interval: interval,
		timeout:  defaults.SnapshotTimeout,
		clock:    clock.RealClock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start runs immediately and then once per interval until ctx is done.
// It always returns nil once ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", slog.Duration("interval", s.interval))
	for {
		s.runOnce(ctx)

		timer := s.clock.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return nil
		case <-timer.C():
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	now := s.clock.Now()
	err := s.runner.Run(runCtx)

	s.mu.Lock()
	s.status.Runs++
	s.status.LastRun = now
	if err != nil {
		s.status.Failures++
		s.status.LastError = err.Error()
	} else {
		s.status.LastSuccess = now
		s.status.LastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("snapshot run failed",
			slog.String("code", string(apperrors.CodeOf(err))),
			slog.String("error", err.Error()))
		return
	}
	if s.onSuccess != nil {
		s.onSuccess()
	}
}

// Status returns a copy of the run status.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
