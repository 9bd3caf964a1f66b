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
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/packcfg/packcfg/pkg/argv"
	"github.com/packcfg/packcfg/pkg/config"
	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/module"
	"github.com/packcfg/packcfg/pkg/options"
)

// Options configures a conversion. Zero fields get defaults.
type Options struct {
	// Dir is the working directory; defaults to the process working directory.
	Dir string
	// OutputFilename is used when neither config nor flags set output.filename.
	OutputFilename string
	Locator        *config.Locator
	Loader         *config.Loader
	// Modules resolves and loads plugin constructors; defaults to the builtins.
	Modules module.ResolveLoader
	// Exists checks positional entries on disk.
	Exists func(path string) bool
}

func (o Options) withDefaults() (Options, error) {
	if o.Dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return o, errors.Wrap(errors.ErrCodeInternal, "failed to get working directory", err)
		}
		o.Dir = wd
	}
	if o.Locator == nil {
		o.Locator = config.NewLocator(o.Dir)
	}
	if o.Loader == nil {
		o.Loader = config.NewLoader()
	}
	if o.Modules == nil {
		o.Modules = module.NewBuiltinRegistry()
	}
	if o.Exists == nil {
		o.Exists = fileExists
	}
	return o, nil
}

// Result is the merged build options, one per loaded config.
type Result struct {
	Configs []*options.BuildOptions
	// Array is set when the configs form a list rather than a single object.
	Array bool
	// Loaded is set when a config file was loaded.
	Loaded bool
}

// Value renders the result as plain data: an object, or a list of objects
// when Array is set.
func (r *Result) Value() any {
	if !r.Array && len(r.Configs) == 1 {
		return r.Configs[0].ToMap()
	}
	list := make([]any, 0, len(r.Configs))
	for _, c := range r.Configs {
		list = append(list, c.ToMap())
	}
	return list
}

// Convert runs the whole pipeline: it expands shortcuts, locates and loads
// config files, then merges args into every loaded config. args is not
// modified.
func Convert(ctx context.Context, args *argv.Arguments, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, observe(err)
	}

	args = Prepare(args)
	descs := opts.Locator.Locate(args.Strings(FlagConfig))
	loaded, err := opts.Loader.Load(ctx, descs, args)
	if err != nil {
		return nil, observe(err)
	}
	return Merge(ctx, loaded, args, opts)
}

// Prepare returns a copy of args with -d and -p expanded and --env folded
// into the env value.
func Prepare(args *argv.Arguments) *argv.Arguments {
	if args == nil {
		args = argv.New()
	}
	args = args.Clone()
	argv.ApplyShortcuts(args)
	if args.Env == nil && args.Has(FlagEnv) {
		args.Env = argv.ParseEnv(args.Strings(FlagEnv))
	}
	return args
}

// Merge applies args to configs that were already loaded. Shortcuts are
// expected to be expanded (see Prepare); args is not modified. Positional
// arguments are shared by every config: each one that needs an output
// filename pops it from the same list.
func Merge(ctx context.Context, loaded *config.Result, args *argv.Arguments, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, observe(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, observe(errors.Wrap(errors.ErrCodeTimeout, "merge cancelled", err))
	}
	if args == nil {
		args = argv.New()
	}

	pos := &positionals{items: slices.Clone(args.Positional)}
	res := &Result{Array: loaded.Array, Loaded: loaded.Loaded}
	for i, raw := range loaded.Configs {
		bo, err := options.Decode(raw)
		if err != nil {
			return nil, observe(errors.WrapWithContext(errors.ErrCodeInvalidConfig, "invalid build options", err,
				map[string]any{"index": i}))
		}

		s := &State{
			Builder:           options.NewBuilder(bo),
			Args:              args,
			Dir:               opts.Dir,
			Modules:           opts.Modules,
			Exists:            opts.Exists,
			outputFilenameSet: bo.Output != nil && bo.Output.Filename != "",
		}
		if err := mergeOne(s, pos, opts.OutputFilename, loaded.Loaded); err != nil {
			return nil, observe(err)
		}
		res.Configs = append(res.Configs, s.Builder.Options())
	}

	slog.Debug("options merged", "configs", len(res.Configs), "array", res.Array, "loaded", res.Loaded)
	return res, observe(nil)
}

func mergeOne(s *State, pos *positionals, outputFilename string, loaded bool) error {
	for _, h := range handlers() {
		if err := h.run(s); err != nil {
			return err
		}
	}
	if err := applyOutputFallback(s, pos, outputFilename, loaded); err != nil {
		return err
	}
	foldPositionals(s, pos)
	if err := checkEntry(s, loaded); err != nil {
		return err
	}
	return finalize(s)
}

func observe(err error) error {
	status := "success"
	if err != nil {
		status = "error"
	}
	mergeTotal.WithLabelValues(status).Inc()
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
