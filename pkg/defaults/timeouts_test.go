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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Config timeouts
		{"ConfigLoadTimeout", ConfigLoadTimeout, 30 * time.Second, 10 * time.Minute},
		{"ConfigFetchTimeout", ConfigFetchTimeout, 5 * time.Second, 60 * time.Second},

		// ConfigMap timeouts
		{"ConfigMapReadTimeout", ConfigMapReadTimeout, 5 * time.Second, 60 * time.Second},
		{"ConfigMapWriteTimeout", ConfigMapWriteTimeout, 10 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPClientTimeout", HTTPClientTimeout, 10 * time.Second, 60 * time.Second},
		{"HTTPConnectTimeout", HTTPConnectTimeout, 1 * time.Second, 15 * time.Second},

		// Wizard
		{"PackageCheckTimeout", PackageCheckTimeout, 1 * time.Second, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestConfigFetchTimeoutLessThanLoad(t *testing.T) {
	// A single fetch must fit inside the overall load budget
	if ConfigFetchTimeout >= ConfigLoadTimeout {
		t.Errorf("ConfigFetchTimeout (%v) should be less than ConfigLoadTimeout (%v)",
			ConfigFetchTimeout, ConfigLoadTimeout)
	}
}

func TestHTTPClientTimeoutRelationships(t *testing.T) {
	// Connect timeout should be less than total timeout
	if HTTPConnectTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPConnectTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPConnectTimeout, HTTPClientTimeout)
	}

	// TLS handshake timeout should be less than total timeout
	if HTTPTLSHandshakeTimeout >= HTTPClientTimeout {
		t.Errorf("HTTPTLSHandshakeTimeout (%v) should be less than HTTPClientTimeout (%v)",
			HTTPTLSHandshakeTimeout, HTTPClientTimeout)
	}
}

func TestConfigBaseNamesOrder(t *testing.T) {
	if len(ConfigBaseNames) != 2 || ConfigBaseNames[0] != "webpack.config" || ConfigBaseNames[1] != "webpackfile" {
		t.Errorf("unexpected ConfigBaseNames: %v", ConfigBaseNames)
	}
}
