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

	"github.com/packcfg/packcfg/pkg/errors"
)

// NotObjectMessage is reported when a config value cannot be reduced to an
// object or a list of objects.
const NotObjectMessage = "Config did not export an object or a function returning an object."

// Kind is the variant held by a RawConfig.
type Kind int

const (
	// KindPlain is a decoded value: an object, a list, or anything else.
	KindPlain Kind = iota
	// KindFactory is a function of (env, argv) producing another RawConfig.
	KindFactory
	// KindDeferred is a value available only after waiting, such as a remote fetch.
	KindDeferred
	// KindDefaultWrapped is a module whose primary export sits under "default".
	KindDefaultWrapped
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindFactory:
		return "factory"
	case KindDeferred:
		return "deferred"
	case KindDefaultWrapped:
		return "default-wrapped"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FactoryFunc computes a config from the env value and the arguments map.
type FactoryFunc func(ctx context.Context, env any, argv map[string]any) (RawConfig, error)

// DeferredFunc produces a config once it is available.
type DeferredFunc func(ctx context.Context) (RawConfig, error)

// RawConfig is a loaded, not yet normalized config value.
type RawConfig struct {
	kind     Kind
	value    any
	factory  FactoryFunc
	deferred DeferredFunc
	inner    *RawConfig
}

// Plain wraps a decoded value.
func Plain(v any) RawConfig {
	return RawConfig{kind: KindPlain, value: v}
}

// Factory wraps a config function.
func Factory(fn FactoryFunc) RawConfig {
	return RawConfig{kind: KindFactory, factory: fn}
}

// Deferred wraps a value that has to be awaited.
func Deferred(fn DeferredFunc) RawConfig {
	return RawConfig{kind: KindDeferred, deferred: fn}
}

// DefaultWrapped wraps inner as a module's default export.
func DefaultWrapped(inner RawConfig) RawConfig {
	return RawConfig{kind: KindDefaultWrapped, inner: &inner}
}

// Kind returns the variant.
func (r RawConfig) Kind() Kind {
	return r.kind
}

// Value returns the wrapped value of a Plain config.
func (r RawConfig) Value() any {
	return r.value
}

func notObject(kind Kind) error {
	return errors.NewWithContext(errors.ErrCodeInvalidConfig, NotObjectMessage,
		map[string]any{"kind": kind.String()})
}

// Normalize reduces raw to plain objects. A factory is called only when it
// is the module value itself or its default export; a factory reached any
// other way is a structural error. Deferred values are awaited and
// normalized again, and objects whose "default" is an object or a list are
// unwrapped. The bool result reports whether the value was a list.
func Normalize(ctx context.Context, raw RawConfig, env any, argv map[string]any) ([]map[string]any, bool, error) {
	invoked, err := invoke(ctx, raw, env, argv)
	if err != nil {
		return nil, false, err
	}
	return process(ctx, invoked)
}

func invoke(ctx context.Context, raw RawConfig, env any, argv map[string]any) (RawConfig, error) {
	fn := raw.factory
	if raw.kind == KindDefaultWrapped && raw.inner.kind == KindFactory {
		fn = raw.inner.factory
	} else if raw.kind != KindFactory {
		return raw, nil
	}
	out, err := fn(ctx, env, argv)
	if err != nil {
		return RawConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, "config function failed", err)
	}
	return out, nil
}

func process(ctx context.Context, raw RawConfig) ([]map[string]any, bool, error) {
	switch raw.kind {
	case KindDeferred:
		if err := ctx.Err(); err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeTimeout, "config wait cancelled", err)
		}
		resolved, err := raw.deferred(ctx)
		if err != nil {
			return nil, false, err
		}
		return process(ctx, resolved)

	case KindDefaultWrapped:
		if raw.inner.kind == KindFactory {
			return nil, false, notObject(raw.inner.kind)
		}
		return process(ctx, *raw.inner)

	case KindFactory:
		return nil, false, notObject(raw.kind)

	case KindPlain:
		return processValue(ctx, raw.value)

	default:
		return nil, false, notObject(raw.kind)
	}
}

func processValue(ctx context.Context, v any) ([]map[string]any, bool, error) {
	switch val := v.(type) {
	case RawConfig:
		return process(ctx, val)

	case map[string]any:
		if d, ok := val["default"]; ok && isObjectLike(d) {
			return processValue(ctx, d)
		}
		return []map[string]any{val}, false, nil

	case []any:
		out := make([]map[string]any, 0, len(val))
		for _, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false, notObject(KindPlain)
			}
			out = append(out, m)
		}
		return out, true, nil

	case []map[string]any:
		return val, true, nil

	default:
		return nil, false, notObject(KindPlain)
	}
}

// isObjectLike reports whether v would be treated as an object when found
// under "default". A null default counts, and then fails normalization.
func isObjectLike(v any) bool {
	switch v.(type) {
	case nil, map[string]any, []any, []map[string]any, RawConfig:
		return true
	default:
		return false
	}
}
