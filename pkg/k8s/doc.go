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

// Package k8s groups the Kubernetes integration used to read and write
// configuration held in ConfigMaps.
//
// # Sub-packages
//
// client: Kubernetes client construction, shared or per kubeconfig
//
//	import "github.com/packcfg/packcfg/pkg/k8s/client"
//
//	c, err := client.ForKubeconfig(path)
//	if err != nil {
//	    return err
//	}
//
// An empty kubeconfig path falls back to the KUBECONFIG environment
// variable, then ~/.kube/config, then the in-cluster configuration.
//
// ConfigMap URIs have the form cm://namespace/name. They are accepted by
// "build --config" as a config source and by "build --output" as a target.
package k8s
