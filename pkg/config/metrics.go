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

package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packcfg_config_load_duration_seconds",
			Help:    "Duration of config loading and normalization in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
	)

	configFilesLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packcfg_config_files_loaded_total",
			Help: "Total number of config files loaded, by extension",
		},
		[]string{"extension"},
	)
)
