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
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/serializer"
)

// Descriptor identifies one config file to load.
type Descriptor struct {
	// Path is absolute for local files and the original URI for remote ones.
	Path string
	// Ext is the recognized extension selecting the compiler and loader.
	Ext string
}

// IsRemote reports whether the descriptor points at an HTTP or ConfigMap source.
func (d Descriptor) IsRemote() bool {
	return IsRemotePath(d.Path)
}

// IsRemotePath reports whether p is an http(s) URL or a ConfigMap URI.
func IsRemotePath(p string) bool {
	return strings.HasPrefix(p, "http://") ||
		strings.HasPrefix(p, "https://") ||
		serializer.IsConfigMapURI(p)
}

// remoteExtension is used for remote sources whose URI carries no
// recognized extension.
const remoteExtension = ".yaml"

// Locator decides which config files to load.
type Locator struct {
	dir       string
	sorted    []string
	baseNames []string
	exists    func(path string) bool
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithLocatorExtensions replaces the recognized extension table.
func WithLocatorExtensions(e Extensions) LocatorOption {
	return func(l *Locator) {
		l.sorted = e.Sorted()
	}
}

// WithBaseNames replaces the default config file base names.
func WithBaseNames(names ...string) LocatorOption {
	return func(l *Locator) {
		l.baseNames = names
	}
}

// WithExists replaces the file existence check.
func WithExists(fn func(path string) bool) LocatorOption {
	return func(l *Locator) {
		l.exists = fn
	}
}

// NewLocator creates a Locator resolving relative paths against dir.
func NewLocator(dir string, opts ...LocatorOption) *Locator {
	l := &Locator{
		dir:       dir,
		sorted:    DefaultExtensions().Sorted(),
		baseNames: defaults.ConfigBaseNames,
		exists:    fileExists,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extensions returns the recognized extensions in search order.
func (l *Locator) Extensions() []string {
	return l.sorted
}

// ExtensionOf returns the recognized extension of path, or its filesystem
// extension when none matches.
func (l *Locator) ExtensionOf(path string) string {
	return extensionOf(l.sorted, path)
}

// Candidates returns every default config path in search order: each base
// name combined with each extension.
func (l *Locator) Candidates() []Descriptor {
	out := make([]Descriptor, 0, len(l.baseNames)*len(l.sorted))
	for _, base := range l.baseNames {
		for _, ext := range l.sorted {
			out = append(out, Descriptor{
				Path: l.resolve(base + ext),
				Ext:  ext,
			})
		}
	}
	return out
}

// Locate returns one descriptor per explicit config path. Without explicit
// paths it returns the first existing default candidate, or nothing.
func (l *Locator) Locate(configPaths []string) []Descriptor {
	if len(configPaths) > 0 {
		out := make([]Descriptor, 0, len(configPaths))
		for _, p := range configPaths {
			d := l.describe(p)
			slog.Debug("config located", "path", d.Path, "ext", d.Ext)
			out = append(out, d)
		}
		return out
	}

	for _, c := range l.Candidates() {
		if l.exists(c.Path) {
			slog.Debug("config located", "path", c.Path, "ext", c.Ext, "implicit", true)
			return []Descriptor{c}
		}
	}
	slog.Debug("no config file found", "dir", l.dir)
	return nil
}

func (l *Locator) describe(p string) Descriptor {
	if !IsRemotePath(p) {
		abs := l.resolve(p)
		return Descriptor{Path: abs, Ext: l.ExtensionOf(abs)}
	}
	ext := remoteExtension
	if !serializer.IsConfigMapURI(p) {
		if e := l.ExtensionOf(strings.SplitN(p, "?", 2)[0]); slices.Contains(l.sorted, e) {
			ext = e
		}
	}
	return Descriptor{Path: p, Ext: ext}
}

func (l *Locator) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(l.dir, p)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
