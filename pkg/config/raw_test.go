package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packcfg/packcfg/pkg/errors"
)

func TestNormalize(t *testing.T) {
	obj := map[string]any{"entry": "x"}

	factory := Factory(func(_ context.Context, env any, argv map[string]any) (RawConfig, error) {
		return Plain(map[string]any{"env": env, "target": argv["target"]}), nil
	})

	tests := []struct {
		name      string
		raw       RawConfig
		want      []map[string]any
		wantArray bool
	}{
		{
			name: "plain object",
			raw:  Plain(obj),
			want: []map[string]any{obj},
		},
		{
			name: "default wrapped object",
			raw:  DefaultWrapped(Plain(obj)),
			want: []map[string]any{obj},
		},
		{
			name: "default key is unwrapped",
			raw:  Plain(map[string]any{"default": obj}),
			want: []map[string]any{obj},
		},
		{
			name: "default key holding a scalar is kept",
			raw:  Plain(map[string]any{"default": "x"}),
			want: []map[string]any{{"default": "x"}},
		},
		{
			name:      "list",
			raw:       Plain([]any{obj, map[string]any{"entry": "y"}}),
			want:      []map[string]any{obj, {"entry": "y"}},
			wantArray: true,
		},
		{
			name:      "default key holding a list",
			raw:       Plain(map[string]any{"default": []any{obj}}),
			want:      []map[string]any{obj},
			wantArray: true,
		},
		{
			name: "factory",
			raw:  factory,
			want: []map[string]any{{"env": "prod", "target": "web"}},
		},
		{
			name: "default wrapped factory",
			raw:  DefaultWrapped(factory),
			want: []map[string]any{{"env": "prod", "target": "web"}},
		},
		{
			name: "deferred default wrapped",
			raw: Factory(func(context.Context, any, map[string]any) (RawConfig, error) {
				return Deferred(func(context.Context) (RawConfig, error) {
					return Plain(map[string]any{"default": obj}), nil
				}), nil
			}),
			want: []map[string]any{obj},
		},
		{
			name: "nested deferred",
			raw: Deferred(func(context.Context) (RawConfig, error) {
				return Deferred(func(context.Context) (RawConfig, error) {
					return Plain([]any{obj}), nil
				}), nil
			}),
			want:      []map[string]any{obj},
			wantArray: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isArray, err := Normalize(context.Background(), tt.raw, "prod", map[string]any{"target": "web"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantArray, isArray)
		})
	}
}

func TestNormalizeNotObject(t *testing.T) {
	tests := []struct {
		name string
		raw  RawConfig
	}{
		{"nil", Plain(nil)},
		{"string", Plain("webpack.config")},
		{"number", Plain(42.0)},
		{"null default", Plain(map[string]any{"default": nil})},
		{"list of scalars", Plain([]any{map[string]any{}, "x"})},
		{
			"factory returning factory",
			Factory(func(context.Context, any, map[string]any) (RawConfig, error) {
				return Factory(func(context.Context, any, map[string]any) (RawConfig, error) {
					return Plain(map[string]any{}), nil
				}), nil
			}),
		},
		{
			"deferred factory",
			Deferred(func(context.Context) (RawConfig, error) {
				return Factory(func(context.Context, any, map[string]any) (RawConfig, error) {
					return Plain(map[string]any{}), nil
				}), nil
			}),
		},
		{
			"factory under default key",
			Plain(map[string]any{"default": Factory(func(context.Context, any, map[string]any) (RawConfig, error) {
				return Plain(map[string]any{}), nil
			})}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(context.Background(), tt.raw, nil, nil)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))

			var se *errors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, NotObjectMessage, se.Message)
		})
	}
}

func TestNormalizeFactoryError(t *testing.T) {
	raw := Factory(func(context.Context, any, map[string]any) (RawConfig, error) {
		return RawConfig{}, assert.AnError
	})
	_, _, err := Normalize(context.Background(), raw, nil, nil)
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
}

func TestNormalizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := Deferred(func(context.Context) (RawConfig, error) {
		t.Error("deferred value must not be awaited after cancellation")
		return Plain(map[string]any{}), nil
	})
	_, _, err := Normalize(ctx, raw, nil, nil)
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "plain", KindPlain.String())
	assert.Equal(t, "factory", KindFactory.String())
	assert.Equal(t, "deferred", KindDeferred.String())
	assert.Equal(t, "default-wrapped", KindDefaultWrapped.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
