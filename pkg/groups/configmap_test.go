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

package groups

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	apperrors "github.com/NVIDIA/vgraph/pkg/errors"
)

func TestConfigMapResolver(t *testing.T) {
	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "vgraph-groups", Namespace: "monitoring"},
		Data: map[string]string{
			"web-01": "web, prod",
			"db-01":  "db\nprod\n",
		},
	}
	r := NewConfigMapResolver(fake.NewSimpleClientset(cm), "monitoring", "vgraph-groups")
	ctx := context.Background()

	tests := []struct {
		host string
		want []Group
	}{
		{host: "web-01", want: []Group{{Name: "web"}, {Name: "prod"}}},
		{host: "db-01", want: []Group{{Name: "db"}, {Name: "prod"}}},
		{host: "cache-01", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			got, err := r.FindGroupsByHostName(ctx, tt.host)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigMapResolverMissingConfigMap(t *testing.T) {
	r := NewConfigMapResolver(fake.NewSimpleClientset(), "monitoring", "absent")
	got, err := r.FindGroupsByHostName(context.Background(), "web-01")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConfigMapResolverAPIError(t *testing.T) {
	cs := fake.NewSimpleClientset()
	cs.PrependReactor("get", "configmaps", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("etcdserver: request timed out")
	})

	r := NewConfigMapResolver(cs, "monitoring", "vgraph-groups")
	_, err := r.FindGroupsByHostName(context.Background(), "web-01")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnavailable))
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []Group{{Name: "a"}, {Name: "b"}, {Name: "c"}}, ParseList(" a,b\r\n,c ,"))
	assert.Empty(t, ParseList(""))
}
