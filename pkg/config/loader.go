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
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/packcfg/packcfg/pkg/argv"
	"github.com/packcfg/packcfg/pkg/errors"
)

// Result holds the normalized configs of every loaded file, flattened in
// file order.
type Result struct {
	Configs []map[string]any
	// Array is set when more than one file was loaded or any file produced a list.
	Array bool
	// Loaded is set when at least one config file was loaded.
	Loaded bool
	Files  []Descriptor
}

// Loader registers compilers and loads config files.
//
// Thread-safety: a Loader may be shared; compiler modules are loaded at most once.
type Loader struct {
	extensions Extensions
	modules    map[string]CompilerModule
	hooks      *Hooks
	readFile   func(path string) ([]byte, error)
	fetcher    Fetcher

	mu      sync.Mutex
	exports map[string]any
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtensions replaces the recognized extension table.
func WithExtensions(e Extensions) Option {
	return func(l *Loader) {
		l.extensions = e
	}
}

// WithModules replaces the available compiler modules.
func WithModules(m map[string]CompilerModule) Option {
	return func(l *Loader) {
		l.modules = m
	}
}

// WithHooks sets the hook table loaders are installed into.
func WithHooks(h *Hooks) Option {
	return func(l *Loader) {
		l.hooks = h
	}
}

// WithReadFile replaces how local files are read.
func WithReadFile(fn func(path string) ([]byte, error)) Option {
	return func(l *Loader) {
		l.readFile = fn
	}
}

// WithFetcher sets the fetcher for remote config sources.
func WithFetcher(f Fetcher) Option {
	return func(l *Loader) {
		l.fetcher = f
	}
}

// NewLoader creates a Loader with the default extensions and modules.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		extensions: DefaultExtensions(),
		modules:    DefaultModules(),
		hooks:      NewHooks(),
		readFile:   os.ReadFile,
		fetcher:    NewRemoteFetcher(""),
		exports:    make(map[string]any),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads every descriptor in order. With no descriptors it returns a
// single empty config and Loaded unset.
func (l *Loader) Load(ctx context.Context, descs []Descriptor, args *argv.Arguments) (*Result, error) {
	start := time.Now()
	defer func() {
		configLoadDuration.Observe(time.Since(start).Seconds())
	}()

	if len(descs) == 0 {
		return &Result{Configs: []map[string]any{{}}}, nil
	}
	if args == nil {
		args = argv.New()
	}
	argvMap := args.Map()

	res := &Result{
		Loaded: true,
		Array:  len(descs) > 1,
		Files:  descs,
	}
	for _, d := range descs {
		if c, ok := l.extensions[d.Ext]; ok {
			if err := l.registerCompiler(c); err != nil {
				return nil, withPath(err, d)
			}
		}

		raw, err := l.read(ctx, d)
		if err != nil {
			return nil, err
		}

		configs, isArray, err := Normalize(ctx, raw, args.Env, argvMap)
		if err != nil {
			return nil, withPath(err, d)
		}

		configFilesLoaded.WithLabelValues(d.Ext).Inc()
		slog.Debug("config loaded", "path", d.Path, "ext", d.Ext, "configs", len(configs), "kind", raw.Kind())

		res.Configs = append(res.Configs, configs...)
		res.Array = res.Array || isArray
	}
	return res, nil
}

// registerCompiler makes sure the hooks c provides are installed. In a
// fallback list, the first alternative that registers wins and failures
// are ignored.
func (l *Loader) registerCompiler(c Compiler) error {
	switch {
	case c.IsNative():
		return nil

	case len(c.FirstOf) > 0:
		for _, alt := range c.FirstOf {
			if err := l.registerCompiler(alt); err != nil {
				slog.Debug("compiler alternative failed", "module", alt.Module, "error", err)
				continue
			}
			return nil
		}
		return nil

	default:
		export, err := l.requireModule(c.Module)
		if err != nil {
			return err
		}
		if c.Register == nil {
			return nil
		}
		if err := c.Register(export, l.hooks); err != nil {
			return errors.WrapWithContext(errors.ErrCodeInternal, "failed to register compiler", err,
				map[string]any{"module": c.Module})
		}
		return nil
	}
}

func (l *Loader) requireModule(name string) (any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if export, ok := l.exports[name]; ok {
		return export, nil
	}
	mod, ok := l.modules[name]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound, "compiler module not found",
			map[string]any{"module": name})
	}
	export, err := mod(l.hooks)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to load compiler module", err,
			map[string]any{"module": name})
	}
	l.exports[name] = export
	return export, nil
}

func (l *Loader) read(ctx context.Context, d Descriptor) (RawConfig, error) {
	hook, ok := l.hooks.Get(d.Ext)
	if !ok {
		return RawConfig{}, errors.NewWithContext(errors.ErrCodeNotFound, "no loader registered for extension",
			map[string]any{"path": d.Path, "ext": d.Ext})
	}

	if d.IsRemote() {
		if l.fetcher == nil {
			return RawConfig{}, errors.NewWithContext(errors.ErrCodeUnavailable, "no fetcher for remote config",
				map[string]any{"path": d.Path})
		}
		return Deferred(func(ctx context.Context) (RawConfig, error) {
			data, err := l.fetcher.Fetch(ctx, d.Path)
			if err != nil {
				return RawConfig{}, err
			}
			return parse(ctx, hook, d, data)
		}), nil
	}

	data, err := l.readFile(d.Path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return RawConfig{}, errors.WrapWithContext(errors.ErrCodeNotFound, "config file not found", err,
				map[string]any{"path": d.Path})
		}
		return RawConfig{}, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read config file", err,
			map[string]any{"path": d.Path})
	}
	return parse(ctx, hook, d, data)
}

func parse(ctx context.Context, hook SourceLoader, d Descriptor, data []byte) (RawConfig, error) {
	raw, err := hook(ctx, d.Path, data)
	if err != nil {
		return RawConfig{}, errors.WrapWithContext(errors.ErrCodeInvalidConfig, "failed to parse config file", err,
			map[string]any{"path": d.Path})
	}
	return raw, nil
}

// withPath adds the descriptor path to a structured error's context.
func withPath(err error, d Descriptor) error {
	var se *errors.StructuredError
	if !stderrors.As(err, &se) {
		return errors.WrapWithContext(errors.ErrCodeInternal, "config load failed", err,
			map[string]any{"path": d.Path})
	}
	if se.Context == nil {
		se.Context = make(map[string]any)
	}
	if _, ok := se.Context["path"]; !ok {
		se.Context["path"] = d.Path
	}
	return err
}
