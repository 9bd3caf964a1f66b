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
	"fmt"
	"log/slog"

	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/module"
	"github.com/packcfg/packcfg/pkg/plugin"
)

// addBuiltin constructs a bundler plugin exposed under module.BuiltinPrefix
// and appends it to the plugin list.
func (s *State) addBuiltin(name string, args any) error {
	request := module.BuiltinPrefix + name
	path, err := s.Modules.Resolve(s.Dir, request)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeNotFound, "Cannot resolve plugin "+request+".", err,
			map[string]any{"plugin": request})
	}
	p, err := s.instantiate(request, path, args)
	if err != nil {
		return err
	}
	s.Builder.AddPlugin(p)
	return nil
}

// loadPlugin resolves and constructs the plugin named by request, which
// may carry a "?query" holding its options.
func (s *State) loadPlugin(request string) (plugin.Plugin, error) {
	name, query := plugin.SplitRequest(request)
	var args any
	if query != "" {
		parsed, err := plugin.ParseQuery(query)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("Invalid plugin arguments %s (%v).", request, err), err,
				map[string]any{"plugin": name})
		}
		args = parsed
	}

	path, err := s.Modules.Resolve(s.Dir, name)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "Cannot resolve plugin "+name+".", err,
			map[string]any{"plugin": name, "dir": s.Dir})
	}
	return s.instantiate(name, path, args)
}

// instantiate loads the constructor at path and calls it with args. Load
// and construction failures are logged with the plugin and path, then
// returned with their cause intact.
func (s *State) instantiate(name, path string, args any) (plugin.Plugin, error) {
	exported, err := s.Modules.Load(path)
	if err != nil {
		slog.Error("Cannot load plugin", "plugin", name, "path", path, "error", err)
		return nil, errors.WrapWithContext(errors.ErrCodePluginLoad,
			fmt.Sprintf("Cannot load plugin %s. (%s)", name, path), err,
			map[string]any{"plugin": name, "path": path})
	}

	var factory plugin.Factory
	switch f := exported.(type) {
	case plugin.Factory:
		factory = f
	case func(any) (plugin.Plugin, error):
		factory = f
	default:
		err := fmt.Errorf("module exports %T, not a plugin constructor", exported)
		slog.Error("Cannot instantiate plugin", "plugin", name, "path", path, "error", err)
		return nil, errors.WrapWithContext(errors.ErrCodePluginLoad,
			fmt.Sprintf("Cannot instantiate plugin %s. (%s)", name, path), err,
			map[string]any{"plugin": name, "path": path})
	}

	p, err := factory(args)
	if err != nil {
		slog.Error("Cannot instantiate plugin", "plugin", name, "path", path, "error", err)
		return nil, errors.WrapWithContext(errors.ErrCodePluginLoad,
			fmt.Sprintf("Cannot instantiate plugin %s. (%s)", name, path), err,
			map[string]any{"plugin": name, "path": path})
	}
	return p, nil
}
