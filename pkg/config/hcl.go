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
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// HCL configs are a flat set of attributes evaluated with two variables,
// env and argv, so every HCL file is a factory:
//
//	entry  = { main = "./src/index.js" }
//	output = { filename = env == null ? "bundle.js" : "bundle.min.js" }

func registerHCL(export any, hooks *Hooks) error {
	parser, ok := export.(*hclparse.Parser)
	if !ok {
		return fmt.Errorf("%s module exported %T, want *hclparse.Parser", HCLModule, export)
	}
	hooks.Set(".hcl", hclSource(parser))
	return nil
}

func hclSource(parser *hclparse.Parser) SourceLoader {
	return func(_ context.Context, path string, data []byte) (RawConfig, error) {
		file, diags := parser.ParseHCL(data, path)
		if diags.HasErrors() {
			return RawConfig{}, fmt.Errorf("failed to parse %s: %w", path, diags)
		}
		attrs, diags := file.Body.JustAttributes()
		if diags.HasErrors() {
			return RawConfig{}, fmt.Errorf("failed to read attributes of %s: %w", path, diags)
		}
		slog.Debug("hcl config parsed", "path", path, "attributes", attributeNames(attrs))
		return Factory(func(_ context.Context, env any, argv map[string]any) (RawConfig, error) {
			evalCtx, err := newEvalContext(env, argv)
			if err != nil {
				return RawConfig{}, err
			}
			out := make(map[string]any, len(attrs))
			for name, attr := range attrs {
				val, diags := attr.Expr.Value(evalCtx)
				if diags.HasErrors() {
					return RawConfig{}, fmt.Errorf("failed to evaluate %s: %w", name, diags)
				}
				native, err := ctyToNative(val)
				if err != nil {
					return RawConfig{}, fmt.Errorf("in attribute '%s': %w", name, err)
				}
				out[name] = native
			}
			return Plain(out), nil
		}), nil
	}
}

func newEvalContext(env any, argv map[string]any) (*hcl.EvalContext, error) {
	envVal, err := nativeToCty(env)
	if err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	argvVal, err := nativeToCty(argv)
	if err != nil {
		return nil, fmt.Errorf("argv: %w", err)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":  envVal,
			"argv": argvVal,
		},
	}, nil
}

// nativeToCty converts decoded argument values. Lists become tuples and
// maps become objects, so mixed element types are allowed.
func nativeToCty(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(val), nil
	case bool:
		return cty.BoolVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case []string:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, s := range val {
			elems[i] = cty.StringVal(s)
		}
		return cty.TupleVal(elems), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, item := range val {
			e, err := nativeToCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = e
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(val) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(val))
		for k, item := range val {
			e, err := nativeToCty(item)
			if err != nil {
				return cty.NilVal, fmt.Errorf("%s: %w", k, err)
			}
			attrs[k] = e
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value type %T", v)
	}
}

// ctyToNative converts an evaluated attribute into plain Go values. Whole
// numbers that fit in an int stay ints.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return nil, fmt.Errorf("could not convert bool: %w", err)
		}
		return b, nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported cty type: %s", ty.FriendlyName())
	}
}

// attributeNames is used in logs; map iteration order is not stable.
func attributeNames(attrs hcl.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
