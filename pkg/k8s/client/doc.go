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

// Package client provides the Kubernetes client used by the ConfigMap group
// resolver and the ConfigMap snapshot sink.
//
// GetKubeClient returns a process wide client built once with sync.Once.
// BuildKubeClient builds a fresh client for an explicit kubeconfig path.
// Discovery order: explicit path, KUBECONFIG, ~/.kube/config, in-cluster
// service account.
//
//	cs, _, err := client.ForKubeconfig(kubeconfig)
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
package client
