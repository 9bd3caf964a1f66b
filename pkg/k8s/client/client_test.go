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
	"strings"
	"sync"
	"testing"

	"github.com/packcfg/packcfg/pkg/errors"
)

// TestBuildKubeClient_PathResolution tests the kubeconfig path resolution logic
// without attempting to connect to a cluster.
func TestBuildKubeClient_PathResolution(t *testing.T) {
	tests := []struct {
		name          string
		kubeconfigArg string
		kubeconfigEnv string
		errorContains string
	}{
		{
			name:          "explicit invalid path",
			kubeconfigArg: "/nonexistent/path/to/kubeconfig",
			errorContains: "failed to build kube config",
		},
		{
			name:          "env var with invalid path",
			kubeconfigEnv: "/nonexistent/env/kubeconfig",
			errorContains: "failed to build kube config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KUBECONFIG", tt.kubeconfigEnv)

			_, _, err := BuildKubeClient(tt.kubeconfigArg)
			if err == nil {
				t.Fatal("BuildKubeClient() expected error")
			}
			if !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("BuildKubeClient() error = %v, want error containing %q", err, tt.errorContains)
			}
		})
	}
}

func TestBuildKubeClient_InvalidFile(t *testing.T) {
	invalidConfig := filepath.Join(t.TempDir(), "invalid-kubeconfig")
	if err := os.WriteFile(invalidConfig, []byte("invalid yaml content"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, _, err := BuildKubeClient(invalidConfig)
	if err == nil {
		t.Fatal("BuildKubeClient() with invalid config should return error")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeInvalidConfig {
		t.Errorf("BuildKubeClient() error code = %s, want %s", code, errors.ErrCodeInvalidConfig)
	}
}

func TestForKubeconfig_Explicit(t *testing.T) {
	c, err := ForKubeconfig("/nonexistent/kubeconfig")
	if err == nil {
		t.Fatal("ForKubeconfig() expected error")
	}
	if c != nil {
		t.Error("ForKubeconfig() should return a nil client on error")
	}
}

// TestGetKubeClient_Singleton checks both calls return identical results,
// whether or not a cluster is reachable.
func TestGetKubeClient_Singleton(t *testing.T) {
	reset := func() {
		clientOnce = sync.Once{}
		cachedClient = nil
		cachedConfig = nil
		clientErr = nil
	}
	reset()
	defer reset()

	client1, config1, err1 := GetKubeClient()
	client2, config2, err2 := GetKubeClient()

	// nolint:errorlint // singleton returns the same error instance
	if err1 != err2 {
		t.Errorf("GetKubeClient() should return same error instance: first=%v, second=%v", err1, err2)
	}
	if client1 != client2 {
		t.Error("GetKubeClient() should return the same client instance")
	}
	if config1 != config2 {
		t.Error("GetKubeClient() should return the same config instance")
	}
	if err1 != nil && client1 != nil {
		t.Error("GetKubeClient() should return a nil client on error")
	}
}
