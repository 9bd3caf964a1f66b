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
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/packcfg/packcfg/pkg/argv"
	"github.com/packcfg/packcfg/pkg/module"
	"github.com/packcfg/packcfg/pkg/options"
)

// Occurrence is one command-line occurrence of a flag.
type Occurrence struct {
	Value argv.Value
	// Key is the text left of "=" for Pair flags.
	Key string
	// HasKey reports whether a Pair occurrence contained "=".
	HasKey bool
	// Text is the value as a string; for Pair flags, the text right of "=".
	Text string
}

// State is what handlers work on while one config is merged.
type State struct {
	Builder *options.Builder
	Args    *argv.Arguments
	Dir     string
	Modules module.ResolveLoader
	Exists  func(path string) bool

	outputFilenameSet bool
	defines           map[string]any
}

// Resolve makes p absolute against the working directory.
func (s *State) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.Dir, p)
}

// Handler maps one flag onto the options. Init runs before the first
// occurrence and Finalize after the last; neither runs when the flag is absent.
type Handler struct {
	Flag  string
	Kind  Kind
	Usage string
	// Target is the path into the options the handler writes.
	Target   string
	Init     func(s *State) error
	Apply    func(s *State, occ Occurrence) error
	Finalize func(s *State) error
}

func (h Handler) run(s *State) error {
	vals := s.Args.Values(h.Flag)
	if len(vals) == 0 {
		return nil
	}

	if h.Init != nil {
		if err := h.Init(s); err != nil {
			return err
		}
	}
	applied := 0
	for _, v := range vals {
		occ := Occurrence{Value: v, Text: v.String()}
		switch h.Kind {
		case Pair:
			if k, rest, ok := strings.Cut(occ.Text, "="); ok {
				occ.Key, occ.HasKey, occ.Text = k, true, rest
			}
		case Presence:
			if !v.Truthy() {
				continue
			}
		case TriState:
			if !v.IsBool() {
				continue
			}
		}
		if err := h.Apply(s, occ); err != nil {
			return err
		}
		applied++
	}
	if h.Finalize != nil {
		if err := h.Finalize(s); err != nil {
			return err
		}
	}

	handlerApplied.WithLabelValues(h.Flag).Add(float64(applied))
	slog.Debug("flag handler applied", "flag", h.Flag, "kind", h.Kind, "target", h.Target, "occurrences", applied)
	return nil
}

var handlers = sync.OnceValue(buildHandlers)

// Handlers returns the handler table in the order handlers run.
func Handlers() []Handler {
	return slices.Clone(handlers())
}

// Lookup returns the handler for flag.
func Lookup(flag string) (Handler, bool) {
	for _, h := range handlers() {
		if h.Flag == flag {
			return h, true
		}
	}
	return Handler{}, false
}
