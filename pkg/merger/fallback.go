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
	"path/filepath"
	"strings"

	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/errors"
)

// Messages reported when a required option is missing.
const (
	msgOutputRequired = "'output.filename' is required, either in config file or as --output-filename"
	msgNoConfigOutput = "No configuration file found and no output filename configured via CLI option."
	msgConfigNoEntry  = "Configuration file found but no entry configured."
	msgNoConfigEntry  = "No configuration file found and no entry configured via CLI option."
	msgTwoArguments   = "When using the CLI you need to provide at least two arguments: entry and output."
	msgHelp           = "Use --help to display the CLI options."
)

func configNameHint() string {
	return "A configuration file could be named '" + defaults.ConfigBaseNames[0] + defaults.NativeExtension +
		"' in the current directory."
}

func missing(lines ...string) error {
	return errors.New(errors.ErrCodeInvalidRequest, strings.Join(lines, "\n"))
}

// positionals is the positional argument list shared by every config of a
// run. Popping the output filename affects every later config.
type positionals struct {
	items []string
}

func (p *positionals) pop() (string, bool) {
	if len(p.items) == 0 {
		return "", false
	}
	last := p.items[len(p.items)-1]
	p.items = p.items[:len(p.items)-1]
	return last, true
}

// applyOutputFallback fills output.filename when no config or flag set it:
// from the explicit fallback filename, else from the last positional.
func applyOutputFallback(s *State, pos *positionals, fallback string, loaded bool) error {
	if s.outputFilenameSet {
		return nil
	}
	out := s.Builder.EnsureOutput()

	target := fallback
	if target == "" {
		last, ok := pos.pop()
		if !ok {
			if loaded {
				return missing(msgOutputRequired)
			}
			return missing(msgNoConfigOutput, configNameHint(), msgHelp)
		}
		target = last
	}
	out.Path = filepath.Dir(target)
	out.Filename = filepath.Base(target)
	return nil
}

// foldPositionals adds the remaining positionals to the entry. "name=request"
// goes to the named entry point unless a "?" comes before the "=". Anything
// else goes to the implicit entry, as an absolute path when that path exists.
func foldPositionals(s *State, pos *positionals) {
	if len(pos.items) == 0 {
		return
	}
	s.Builder.EnsureEntry()
	for _, content := range pos.items {
		i := strings.Index(content, "=")
		j := strings.Index(content, "?")
		if i < 0 || (j >= 0 && j < i) {
			resolved := s.Resolve(content)
			if s.Exists(resolved) {
				s.Builder.AddEntry(defaults.EntryName, resolved)
			} else {
				s.Builder.AddEntry(defaults.EntryName, content)
			}
			continue
		}
		s.Builder.AddEntry(content[:i], content[i+1:])
	}
}

func checkEntry(s *State, loaded bool) error {
	if !s.Builder.Options().Entry.IsEmpty() {
		return nil
	}
	if loaded {
		return missing(msgConfigNoEntry, msgHelp)
	}
	return missing(msgNoConfigEntry, msgTwoArguments, configNameHint(), msgHelp)
}
