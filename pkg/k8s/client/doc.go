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

// Package client provides a cached Kubernetes client.
//
// packcfg talks to Kubernetes only for ConfigMap-backed configs: reading
// cm://namespace/name config sources and writing build output to a
// ConfigMap. The client is created once with sync.Once and reused:
//
//	k8s, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// A --kubeconfig flag maps to ForKubeconfig, which bypasses the cache for an
// explicit file:
//
//	k8s, err := client.ForKubeconfig(cmd.String("kubeconfig"))
//
// # Authentication Modes
//
// Out-of-cluster:
//   - Checks KUBECONFIG environment variable first
//   - Falls back to ~/.kube/config if KUBECONFIG not set
//
// In-cluster:
//   - Uses the pod service account when no kubeconfig is found
//
// # Testing
//
// Interface aliases kubernetes.Interface so tests can pass
// k8s.io/client-go/kubernetes/fake clientsets wherever a client is accepted.
package client
