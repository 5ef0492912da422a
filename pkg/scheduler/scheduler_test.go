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

package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/NVIDIA/vgraph/pkg/defaults"
	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNew(t *testing.T) {
	noop := RunnerFunc(func(context.Context) error { return nil })

	_, err := New(nil, time.Minute)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))

	_, err = New(noop, defaults.MinSnapshotInterval-time.Second)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidRequest))

	s, err := New(noop, defaults.SnapshotInterval)
	require.NoError(t, err)
	assert.Equal(t, defaults.SnapshotTimeout, s.timeout)
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	var runs, successes atomic.Int32
	runner := RunnerFunc(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("run context has no deadline")
		}
		if runs.Add(1) == 2 {
			return errors.New("transient")
		}
		return nil
	})

	s, err := New(runner, time.Minute, WithClock(fc), quiet(),
		OnSuccess(func() { successes.Add(1) }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	for want := int32(1); want <= 3; want++ {
		require.Eventually(t, func() bool { return runs.Load() == want && fc.HasWaiters() },
			time.Second, time.Millisecond, "run %d", want)
		if want < 3 {
			fc.Step(time.Minute)
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}

	st := s.Status()
	assert.Equal(t, 3, st.Runs)
	assert.Equal(t, 1, st.Failures)
	assert.Empty(t, st.LastError)
	assert.Equal(t, int32(2), successes.Load())
}

func TestSchedulerRecordsFailure(t *testing.T) {
	fc := clocktesting.NewFakeClock(time.Now())
	s, err := New(RunnerFunc(func(context.Context) error {
		return apperrors.New(apperrors.ErrCodeDiscoveryFailed, "no hosts")
	}), time.Minute, WithClock(fc), WithTimeout(0), quiet())
	require.NoError(t, err)

	s.runOnce(context.Background())
	st := s.Status()
	assert.Equal(t, 1, st.Failures)
	assert.Contains(t, st.LastError, "no hosts")
	assert.True(t, st.LastSuccess.IsZero())
}

func TestSchedulerSkipsWhenCanceled(t *testing.T) {
	called := false
	s, err := New(RunnerFunc(func(context.Context) error {
		called = true
		return nil
	}), time.Minute, quiet())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Start(ctx))
	assert.False(t, called)
}
