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
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/options.json
var optionsSchema []byte

//go:embed schema/devserver.json
var devServerSchema []byte

const optionsSchemaURL = "options.json"

// sourceMapDevtools are offered for devtool in addition to what the
// schema lists.
var sourceMapDevtools = []string{
	"eval",
	"cheap-eval-source-map",
	"cheap-module-eval-source-map",
	"eval-source-map",
	"cheap-source-map",
	"cheap-module-source-map",
	"inline-cheap-source-map",
	"inline-cheap-module-source-map",
	"source-map",
	"inline-source-map",
	"hidden-source-map",
	"nosources-source-map",
}

// OtherChoice lets the user type a key that the schema does not list.
const OtherChoice = "other"

// schemaNode is the subset of a JSON schema used for choice discovery.
type schemaNode struct {
	Properties  map[string]*schemaNode `json:"properties"`
	Definitions map[string]*schemaNode `json:"definitions"`
	AnyOf       []*schemaNode          `json:"anyOf"`
	Enum        []any                  `json:"enum"`
}

// Schema describes the options a config file may hold.
type Schema struct {
	root      *schemaNode
	devServer *schemaNode
	compiled  *jsonschema.Schema
}

// NewSchema parses and compiles the embedded options schemas.
func NewSchema() (*Schema, error) {
	var root, devServer schemaNode
	if err := json.Unmarshal(optionsSchema, &root); err != nil {
		return nil, fmt.Errorf("failed to parse options schema: %w", err)
	}
	if err := json.Unmarshal(devServerSchema, &devServer); err != nil {
		return nil, fmt.Errorf("failed to parse dev server schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(optionsSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to read options schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)
	if err := compiler.AddResource(optionsSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add options schema: %w", err)
	}
	compiled, err := compiler.Compile(optionsSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile options schema: %w", err)
	}

	return &Schema{root: &root, devServer: &devServer, compiled: compiled}, nil
}

// Choice is what the wizard offers for one property.
type Choice struct {
	Property string
	// Options is empty when the value is typed in rather than picked.
	Options []string
}

// Deep reports whether the property has named sub-keys or values to pick from.
func (c Choice) Deep() bool {
	return len(c.Options) > 0
}

// Choices returns what can be picked for prop. Sub-keys come from the
// property's definition, its own properties, or the anyOf members that
// carry properties or an enum, in that order.
func (s *Schema) Choices(prop string) Choice {
	c := Choice{Property: prop}

	var keys []string
	switch prop {
	case "watch":
		keys = []string{"true", "false"}
	default:
		keys = s.schemaKeys(prop)
	}

	switch {
	case keys != nil && prop == "devtool":
		c.Options = append(keys, sourceMapDevtools...)
	case keys != nil:
		c.Options = append(keys, OtherChoice)
	case prop == "devServer":
		c.Options = append(sortedKeys(s.devServer.Properties), OtherChoice)
	}
	return c
}

func (s *Schema) schemaKeys(prop string) []string {
	if def, ok := s.root.Definitions[prop]; ok {
		if def.Properties == nil {
			return nil
		}
		return sortedKeys(def.Properties)
	}

	node, ok := s.root.Properties[prop]
	if !ok || node == nil {
		return nil
	}
	if node.Properties != nil {
		return sortedKeys(node.Properties)
	}

	var members []*schemaNode
	for _, m := range node.AnyOf {
		if m.Properties != nil || m.Enum != nil {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return nil
	}
	// Only the first two members are looked at for properties.
	if slices.ContainsFunc(members, func(m *schemaNode) bool { return m.Properties != nil }) {
		for _, m := range members[:min(2, len(members))] {
			if m.Properties != nil {
				return sortedKeys(m.Properties)
			}
		}
		return nil
	}

	keys := make([]string, 0, len(members[0].Enum))
	for _, v := range members[0].Enum {
		keys = append(keys, fmt.Sprint(v))
	}
	return keys
}

func sortedKeys(m map[string]*schemaNode) []string {
	return slices.Sorted(maps.Keys(m))
}

// Validate checks a decoded JSON document against the options schema and
// returns one message per violation.
func (s *Schema) Validate(data []byte) ([]string, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read config for validation: %w", err)
	}

	err = s.compiled.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !stderrors.As(err, &ve) {
		return nil, err
	}

	printer := message.NewPrinter(language.English)
	var out []string
	collectViolations(ve, printer, &out)
	return out, nil
}

func collectViolations(ve *jsonschema.ValidationError, p *message.Printer, out *[]string) {
	if len(ve.Causes) == 0 {
		*out = append(*out, fmt.Sprintf("/%s: %s", strings.Join(ve.InstanceLocation, "/"), ve.ErrorKind.LocalizedString(p)))
		return
	}
	for _, c := range ve.Causes {
		collectViolations(c, p, out)
	}
}
