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

package plugin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    map[string]any
		wantErr bool
	}{
		{name: "empty", query: "", want: map[string]any{}},
		{name: "missing question mark", query: "a=1", wantErr: true},
		{name: "pairs", query: "?a=1&b=two", want: map[string]any{"a": "1", "b": "two"}},
		{name: "comma separated", query: "?a=1,b=2", want: map[string]any{"a": "1", "b": "2"}},
		{name: "special values", query: "?a=true&b=false&c=null", want: map[string]any{"a": true, "b": false, "c": nil}},
		{name: "flags", query: "?debug&-minimize&+cache", want: map[string]any{"debug": true, "minimize": false, "cache": true}},
		{name: "list", query: "?x[]=1&x[]=2", want: map[string]any{"x": []any{"1", "2"}}},
		{name: "url decoded", query: "?name=a%20b&c%2Fd=1", want: map[string]any{"name": "a b", "c/d": "1"}},
		{name: "object", query: `?{"a": 1, b: "x", c: {d: true}}`, want: map[string]any{"a": 1, "b": "x", "c": map[string]any{"d": true}}},
		{name: "bad object", query: "?{a: [}", wantErr: true},
		{name: "bad escape", query: "?a=%zz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseQuery() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitRequest(t *testing.T) {
	name, query := SplitRequest("my-plugin?a=1")
	if name != "my-plugin" || query != "?a=1" {
		t.Errorf("SplitRequest() = %q, %q", name, query)
	}
	name, query = SplitRequest("my-plugin")
	if name != "my-plugin" || query != "" {
		t.Errorf("SplitRequest() = %q, %q", name, query)
	}
}

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{
		DefinePluginName,
		HotModuleReplacementPluginName,
		LoaderOptionsPluginName,
		LimitChunkCountPluginName,
		MinChunkSizePluginName,
		UglifyJsPluginName,
		PrefetchPluginName,
		ProvidePluginName,
		LabeledModulesPluginName,
	} {
		t.Run(name, func(t *testing.T) {
			p, err := Construct(name, nil)
			if err != nil {
				t.Fatalf("Construct(%s) error = %v", name, err)
			}
			if p.Name() != name {
				t.Errorf("Name() = %s, want %s", p.Name(), name)
			}
		})
	}
}

func TestConstructWithQueryArgs(t *testing.T) {
	args, err := ParseQuery("?maxChunks=5")
	if err != nil {
		t.Fatal(err)
	}
	p, err := Construct(LimitChunkCountPluginName, args)
	if err != nil {
		t.Fatalf("Construct() error = %v", err)
	}
	lc, ok := p.(*LimitChunkCount)
	if !ok {
		t.Fatalf("unexpected type %T", p)
	}
	if lc.MaxChunks != 5 {
		t.Errorf("MaxChunks = %d, want 5", lc.MaxChunks)
	}
}

func TestConstructInvalidArgs(t *testing.T) {
	if _, err := Construct(DefinePluginName, "not-a-map"); err == nil {
		t.Error("expected error for non-object define args")
	}
	if _, err := Construct("NoSuchPlugin", nil); err == nil {
		t.Error("expected error for unregistered plugin")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	if err := Register(DefinePluginName, nil); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestMatching(t *testing.T) {
	got := Matching("chunk")
	want := []string{LimitChunkCountPluginName, MinChunkSizePluginName}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Matching() mismatch (-want +got):\n%s", diff)
	}
	if got := Matching("nothing-like-this"); len(got) != 0 {
		t.Errorf("Matching() = %v, want none", got)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		p    Plugin
		want any
	}{
		{
			name: "no options",
			p:    &HotModuleReplacement{},
			want: map[string]any{"name": HotModuleReplacementPluginName},
		},
		{
			name: "define",
			p:    NewDefine(map[string]any{"DEBUG": true}),
			want: map[string]any{"name": DefinePluginName, "options": map[string]any{"DEBUG": true}},
		},
		{
			name: "provide",
			p:    NewProvide("$", "jquery"),
			want: map[string]any{"name": ProvidePluginName, "options": map[string]string{"$": "jquery"}},
		},
		{
			name: "raw",
			p:    Raw{Value: map[string]any{"name": "X", "options": 1}},
			want: map[string]any{"name": "X", "options": 1},
		},
		{
			name: "instance",
			p:    New("BannerPlugin", "hello"),
			want: map[string]any{"name": "BannerPlugin", "options": "hello"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Describe(tt.p)); diff != "" {
				t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRawName(t *testing.T) {
	if got := (Raw{Value: map[string]any{"name": "X"}}).Name(); got != "X" {
		t.Errorf("Name() = %q, want X", got)
	}
	if got := (Raw{Value: "opaque"}).Name(); got != "" {
		t.Errorf("Name() = %q, want empty", got)
	}
}
