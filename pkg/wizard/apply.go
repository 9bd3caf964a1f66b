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

package wizard

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"sigs.k8s.io/yaml"

	"github.com/packcfg/packcfg/pkg/config"
	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/serializer"
)

// Applied describes an edited config file.
type Applied struct {
	Path string
	// Created is set when the file did not exist before.
	Created bool
	// Warnings lists schema violations found in the edited config.
	Warnings []string
}

// Apply merges cfg into the JSON or YAML config file at path as an
// RFC 7386 merge patch, creating the file when missing. Plugins are
// appended to the existing list. The result is validated against schema
// when one is given; violations are reported as warnings.
func Apply(path string, cfg Configuration, schema *Schema) (*Applied, error) {
	format, err := editableFormat(path)
	if err != nil {
		return nil, err
	}

	res := &Applied{Path: path}
	data, err := os.ReadFile(path)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		res.Created = true
	case err != nil:
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read config file", err,
			map[string]any{"path": path})
	}

	doc, current, err := toJSONObject(format, data)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "config file cannot be edited", err,
			map[string]any{"path": path})
	}

	patch, err := json.Marshal(patchFor(cfg, current))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode config patch", err)
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to merge config patch", err,
			map[string]any{"path": path})
	}

	if schema != nil {
		warnings, err := schema.Validate(merged)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to validate config", err)
		}
		for _, w := range warnings {
			slog.Warn("config does not match schema", "path", path, "violation", w)
		}
		res.Warnings = warnings
	}

	out, err := fromJSON(format, merged)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode config", err)
	}
	if err := serializer.WriteToFile(path, out); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to write config file", err,
			map[string]any{"path": path})
	}

	slog.Debug("config updated", "path", path, "item", cfg.Item, "created", res.Created)
	return res, nil
}

// editableFormat accepts the data formats that can be rewritten in place.
func editableFormat(path string) (serializer.Format, error) {
	switch ext := config.NewLocator(filepath.Dir(path)).ExtensionOf(path); ext {
	case ".json":
		return serializer.FormatJSON, nil
	case ".yaml", ".yml":
		return serializer.FormatYAML, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "only JSON and YAML config files can be edited",
			map[string]any{"path": path, "extension": ext})
	}
}

func toJSONObject(format serializer.Format, data []byte) ([]byte, map[string]any, error) {
	doc := []byte("{}")
	if len(bytes.TrimSpace(data)) > 0 {
		doc = data
		if format == serializer.FormatYAML {
			converted, err := yaml.YAMLToJSON(data)
			if err != nil {
				return nil, nil, err
			}
			doc = converted
		}
	}

	var current map[string]any
	if err := json.Unmarshal(doc, &current); err != nil {
		return nil, nil, err
	}
	if current == nil {
		return []byte("{}"), map[string]any{}, nil
	}
	return doc, current, nil
}

// patchFor builds the merge patch. Unset options are dropped since null
// deletes a key in a merge patch.
func patchFor(cfg Configuration, current map[string]any) map[string]any {
	patch := make(map[string]any, len(cfg.Options))
	for k, v := range cfg.Options {
		if v == nil {
			continue
		}
		patch[k] = v
	}
	if added, ok := patch["plugins"].([]any); ok {
		existing, _ := current["plugins"].([]any)
		patch["plugins"] = append(slices.Clone(existing), added...)
	}
	return patch
}

func fromJSON(format serializer.Format, doc []byte) ([]byte, error) {
	if format == serializer.FormatYAML {
		return yaml.JSONToYAML(doc)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
