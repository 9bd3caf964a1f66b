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

// Package serializer provides encoding and decoding of configuration data in multiple formats.
//
// # Overview
//
// The serializer package writes merged build options as JSON, YAML or a
// flattened table, to stdout, a file, or a Kubernetes ConfigMap. It also
// reads JSON and YAML, fetches remote content over HTTP, and reads content
// stored in ConfigMaps.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, indented representation
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - KEY/VALUE rows for terminal viewing; plugins and loader rules
//     render on one row each
//   - Write-only (no deserialization support)
//
// # Usage - Encoding
//
// Write to a file or a stream:
//
//	w, err := serializer.NewFileWriter(serializer.FormatYAML, "build.yaml")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, data); err != nil {
//	    return err
//	}
//
// NewConfigMapWriter writes a ConfigMap through Server-Side Apply with
// the content under data.config.<ext>. All writers render the same bytes
// for a given format.
//
// # Usage - Decoding
//
//	var v any
//	if err := serializer.Decode(serializer.FormatJSON, data, &v); err != nil {
//	    return err
//	}
//
// # Remote Content
//
// HttpReader fetches remote configs and registry documents over http(s),
// with per-phase timeouts and a body size cap:
//
//	r := serializer.NewHttpReader(serializer.WithUserAgent("packcfg/v1.2.0"))
//	data, err := r.ReadWithContext(ctx, url)
//
// Non-200 responses are returned as *StatusError. ReadConfigMap returns
// the content stored by a ConfigMapWriter.
package serializer
