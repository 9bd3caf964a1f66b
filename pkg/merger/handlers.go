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

package merger

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/options"
	"github.com/packcfg/packcfg/pkg/plugin"
)

var extensionSeparator = regexp.MustCompile(`,\s*`)

// buildHandlers returns the handler table. Handlers are independent except
// that --optimize-minimize reads the devtool set by --devtool, so the order
// is kept stable.
func buildHandlers() []Handler {
	hs := []Handler{
		{
			Flag:   "entry",
			Kind:   Pair,
			Usage:  "entry point, name=request or request (repeatable)",
			Target: "entry",
			Init: func(s *State) error {
				s.Builder.EnsureEntry()
				return nil
			},
			Apply: func(s *State, occ Occurrence) error {
				name := defaults.EntryName
				if occ.HasKey {
					name = occ.Key
				}
				s.Builder.AddEntry(name, occ.Text)
				return nil
			},
		},
		bindLoaders("module-bind", options.Loaders),
		bindLoaders("module-bind-pre", options.PreLoaders),
		bindLoaders("module-bind-post", options.PostLoaders),
		{
			Flag:   "define",
			Kind:   Pair,
			Usage:  "define a free variable, name=value or name (repeatable)",
			Target: "plugins",
			Init: func(s *State) error {
				s.defines = make(map[string]any)
				return nil
			},
			Apply: func(s *State, occ Occurrence) error {
				if !occ.HasKey {
					s.defines[occ.Text] = true
					return nil
				}
				s.defines[occ.Key] = occ.Text
				return nil
			},
			Finalize: func(s *State) error {
				return s.addBuiltin(plugin.DefinePluginName, s.defines)
			},
		},
		outputString("output-path", "path", func(o *options.Output, v string) { o.Path = v }),
		{
			Flag:   FlagOutputFilename,
			Kind:   Scalar,
			Usage:  "output filename of the bundle",
			Target: "output.filename",
			Apply: func(s *State, occ Occurrence) error {
				s.Builder.EnsureOutput().Filename = occ.Text
				s.outputFilenameSet = true
				return nil
			},
		},
		outputString("output-chunk-filename", "chunkFilename", func(o *options.Output, v string) { o.ChunkFilename = v }),
		outputString("output-source-map-filename", "sourceMapFilename", func(o *options.Output, v string) { o.SourceMapFilename = v }),
		outputString("output-public-path", "publicPath", func(o *options.Output, v string) { o.PublicPath = v }),
		outputString("output-jsonp-function", "jsonpFunction", func(o *options.Output, v string) { o.JsonpFunction = v }),
		{
			Flag:   "output-pathinfo",
			Kind:   Presence,
			Usage:  "include path comments in the bundle",
			Target: "output.pathinfo",
			Apply: func(s *State, _ Occurrence) error {
				s.Builder.EnsureOutput().Pathinfo = options.BoolPtr(true)
				return nil
			},
		},
		outputString("output-library", "library", func(o *options.Output, v string) { o.Library = v }),
		outputString("output-library-target", "libraryTarget", func(o *options.Output, v string) { o.LibraryTarget = v }),
		recordsPath("records-input-path", "recordsInputPath", func(o *options.BuildOptions, v string) { o.RecordsInputPath = v }),
		recordsPath("records-output-path", "recordsOutputPath", func(o *options.BuildOptions, v string) { o.RecordsOutputPath = v }),
		recordsPath("records-path", "recordsPath", func(o *options.BuildOptions, v string) { o.RecordsPath = v }),
		{
			Flag:   "target",
			Kind:   Scalar,
			Usage:  "environment the bundle runs in",
			Target: "target",
			Apply: func(s *State, occ Occurrence) error {
				s.Builder.Options().Target = occ.Text
				return nil
			},
		},
		triState("cache", "enable or disable in-memory caching", func(o *options.BuildOptions, v bool) { o.Cache = &v }),
		presencePlugin("hot", "enable hot module replacement", plugin.HotModuleReplacementPluginName, nil),
		presencePlugin("debug", "switch loaders to debug mode", plugin.LoaderOptionsPluginName, map[string]any{"debug": true}),
		{
			Flag:   "devtool",
			Kind:   Scalar,
			Usage:  "source map style",
			Target: "devtool",
			Apply: func(s *State, occ Occurrence) error {
				s.Builder.Options().Devtool = occ.Text
				return nil
			},
		},
		resolveAlias("resolve-alias", options.ResolveModules),
		resolveAlias("resolve-loader-alias", options.ResolveLoaders),
		{
			Flag:   "resolve-extensions",
			Kind:   Scalar,
			Usage:  "comma separated extensions tried when resolving modules",
			Target: "resolve.extensions",
			Apply: func(s *State, occ Occurrence) error {
				s.Builder.SetExtensions(extensionSeparator.Split(occ.Text, -1))
				return nil
			},
		},
		chunkPlugin("optimize-max-chunks", "maximum number of chunks", plugin.LimitChunkCountPluginName, "maxChunks"),
		chunkPlugin("optimize-min-chunk-size", "minimum chunk size", plugin.MinChunkSizePluginName, "minChunkSize"),
		{
			Flag:   "optimize-minimize",
			Kind:   Presence,
			Usage:  "minimize javascript and switch loaders to minimizing",
			Target: "plugins",
			Apply: func(s *State, _ Occurrence) error {
				devtool := s.Builder.Options().Devtool
				sourceMap := strings.Contains(devtool, "sourcemap") || strings.Contains(devtool, "source-map")
				if err := s.addBuiltin(plugin.UglifyJsPluginName, map[string]any{"sourceMap": sourceMap}); err != nil {
					return err
				}
				return s.addBuiltin(plugin.LoaderOptionsPluginName, map[string]any{"minimize": true})
			},
		},
		{
			Flag:   "prefetch",
			Kind:   Scalar,
			Usage:  "prefetch this request (repeatable)",
			Target: "plugins",
			Apply: func(s *State, occ Occurrence) error {
				return s.addBuiltin(plugin.PrefetchPluginName, occ.Text)
			},
		},
		{
			Flag:   "provide",
			Kind:   Pair,
			Usage:  "provide a module as a free variable, name=module or name (repeatable)",
			Target: "plugins",
			Apply: func(s *State, occ Occurrence) error {
				name := occ.Text
				if occ.HasKey {
					name = occ.Key
				}
				return s.addBuiltin(plugin.ProvidePluginName, map[string]any{name: occ.Text})
			},
		},
		presencePlugin("labeled-modules", "enable labeled modules", plugin.LabeledModulesPluginName, nil),
		{
			Flag:   "plugin",
			Kind:   Scalar,
			Usage:  "load a plugin, name or name?query (repeatable)",
			Target: "plugins",
			Apply: func(s *State, occ Occurrence) error {
				p, err := s.loadPlugin(occ.Text)
				if err != nil {
					return err
				}
				s.Builder.AddPlugin(p)
				return nil
			},
		},
		triState("bail", "abort the build on the first error", func(o *options.BuildOptions, v bool) { o.Bail = &v }),
		triState("profile", "record timing information per module", func(o *options.BuildOptions, v bool) { o.Profile = &v }),
	}
	return hs
}

func bindLoaders(flag string, c options.LoaderCollection) Handler {
	return Handler{
		Flag:   flag,
		Kind:   Pair,
		Usage:  "bind an extension to a loader, ext=loader or ext (repeatable)",
		Target: "module." + string(c),
		Init: func(s *State) error {
			s.Builder.EnsureLoaders(c)
			return nil
		},
		Apply: func(s *State, occ Occurrence) error {
			name, binding := occ.Key, occ.Text
			if !occ.HasKey {
				name, binding = occ.Text, occ.Text+"-loader"
			}
			s.Builder.AddLoaderRule(c, options.LoaderRule{
				Test:   options.ExtensionPattern(name),
				Loader: binding,
			})
			return nil
		},
	}
}

func outputString(flag, field string, set func(o *options.Output, v string)) Handler {
	return Handler{
		Flag:   flag,
		Kind:   Scalar,
		Usage:  "output." + field,
		Target: "output." + field,
		Apply: func(s *State, occ Occurrence) error {
			set(s.Builder.EnsureOutput(), occ.Text)
			return nil
		},
	}
}

func recordsPath(flag, field string, set func(o *options.BuildOptions, v string)) Handler {
	return Handler{
		Flag:   flag,
		Kind:   Scalar,
		Usage:  field + ", resolved against the working directory",
		Target: field,
		Apply: func(s *State, occ Occurrence) error {
			set(s.Builder.Options(), s.Resolve(occ.Text))
			return nil
		},
	}
}

func triState(flag, usage string, set func(o *options.BuildOptions, v bool)) Handler {
	return Handler{
		Flag:   flag,
		Kind:   TriState,
		Usage:  usage,
		Target: flag,
		Apply: func(s *State, occ Occurrence) error {
			b, _ := occ.Value.Raw().(bool)
			set(s.Builder.Options(), b)
			return nil
		},
	}
}

func presencePlugin(flag, usage, name string, args map[string]any) Handler {
	return Handler{
		Flag:   flag,
		Kind:   Presence,
		Usage:  usage,
		Target: "plugins",
		Apply: func(s *State, _ Occurrence) error {
			if args == nil {
				return s.addBuiltin(name, nil)
			}
			return s.addBuiltin(name, args)
		},
	}
}

func chunkPlugin(flag, usage, name, option string) Handler {
	return Handler{
		Flag:   flag,
		Kind:   Scalar,
		Usage:  usage,
		Target: "plugins",
		Apply: func(s *State, occ Occurrence) error {
			n, err := parseLeadingInt(occ.Text)
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "--"+flag+" <number>", err,
					map[string]any{"value": occ.Text})
			}
			return s.addBuiltin(name, map[string]any{option: n})
		},
	}
}

func resolveAlias(flag string, t options.ResolveTarget) Handler {
	return Handler{
		Flag:   flag,
		Kind:   Pair,
		Usage:  "alias a module request, name=replacement (repeatable)",
		Target: string(t) + ".alias",
		Apply: func(s *State, occ Occurrence) error {
			if !occ.HasKey || occ.Key == "" {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest, "--"+flag+" <string>=<string>",
					map[string]any{"value": occ.Value.String()})
			}
			s.Builder.SetAlias(t, occ.Key, occ.Text)
			return nil
		},
	}
}

// parseLeadingInt reads the base 10 integer at the start of v, ignoring
// whatever follows it.
func parseLeadingInt(v string) (int, error) {
	v = strings.TrimSpace(v)
	end := 0
	if end < len(v) && (v[end] == '-' || v[end] == '+') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(v[:end])
}
