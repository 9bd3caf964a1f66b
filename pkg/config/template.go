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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/packcfg/packcfg/pkg/serializer"
)

// templateData is what a templated config is executed with.
type templateData struct {
	Env  any
	Argv map[string]any
}

var templateFuncs = template.FuncMap{
	// toJSON renders a value inline; JSON is also valid YAML.
	"toJSON": func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
	// default returns def when v is nil or an empty string.
	"default": func(def, v any) any {
		if v == nil {
			return def
		}
		if s, ok := v.(string); ok && s == "" {
			return def
		}
		return v
	},
}

// templateSource parses a text/template config. Executing it is deferred to
// the factory, which renders with env and argv and decodes the output in
// format.
func templateSource(format serializer.Format) SourceLoader {
	return func(_ context.Context, path string, data []byte) (RawConfig, error) {
		tmpl, err := template.New(filepath.Base(path)).
			Funcs(templateFuncs).
			Option("missingkey=zero").
			Parse(string(data))
		if err != nil {
			return RawConfig{}, fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		return Factory(func(_ context.Context, env any, argv map[string]any) (RawConfig, error) {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, templateData{Env: env, Argv: argv}); err != nil {
				return RawConfig{}, fmt.Errorf("failed to render template %s: %w", path, err)
			}
			var v any
			if err := serializer.Decode(format, buf.Bytes(), &v); err != nil {
				return RawConfig{}, fmt.Errorf("failed to parse rendered %s: %w", path, err)
			}
			return Plain(v), nil
		}), nil
	}
}
