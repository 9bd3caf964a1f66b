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

package client

import (
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/packcfg/packcfg/pkg/errors"
)

// Interface is an alias for kubernetes.Interface to allow easier mocking in tests.
// This enables using fake.NewSimpleClientset() which returns kubernetes.Interface.
type Interface = kubernetes.Interface

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a singleton Kubernetes client, creating it on first call.
// Subsequent calls return the cached client.
//
// The client automatically discovers configuration from:
//   - KUBECONFIG environment variable
//   - ~/.kube/config (default location)
//   - In-cluster service account (when running as Kubernetes Pod)
//
// For custom kubeconfig paths, use GetKubeClientWithConfig.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = BuildKubeClient("")
	})
	if clientErr != nil {
		return nil, nil, clientErr
	}
	return cachedClient, cachedConfig, nil
}

// BuildKubeClient creates a Kubernetes client from the given kubeconfig file.
// It bypasses the singleton cache.
//
// Parameters:
//   - kubeconfig: Path to kubeconfig file. If empty, uses automatic discovery:
//     1. KUBECONFIG environment variable
//     2. ~/.kube/config (if it exists)
//     3. In-cluster configuration (service account)
//
// Returns:
//   - *kubernetes.Clientset: The Kubernetes client
//   - *rest.Config: The rest configuration used to create the client
//   - error: Any error encountered during client creation
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	var config *rest.Config
	var err error

	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")

		if kubeconfig == "" {
			kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
			if _, err = os.Stat(kubeconfig); os.IsNotExist(err) {
				kubeconfig = ""
			}
		}
	}

	// Use InClusterConfig directly when no kubeconfig is available
	// This avoids the warning: "Neither --kubeconfig nor --master was specified"
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to get in-cluster config", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "failed to build kube config", err,
				map[string]any{"kubeconfig": kubeconfig})
		}
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to create kubernetes client", err)
	}

	return client, config, nil
}

// GetKubeClientWithConfig is a convenience wrapper around BuildKubeClient
// that returns the Interface type, so callers can swap in a fake clientset.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	return BuildKubeClient(kubeconfig)
}

// ForKubeconfig returns the cached client when kubeconfig is empty and a
// dedicated client for that file otherwise.
func ForKubeconfig(kubeconfig string) (Interface, error) {
	var (
		c   Interface
		err error
	)
	if kubeconfig == "" {
		c, _, err = GetKubeClient()
	} else {
		c, _, err = GetKubeClientWithConfig(kubeconfig)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
