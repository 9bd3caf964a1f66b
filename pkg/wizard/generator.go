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

package wizard

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/plugin"
)

// Prompter asks the user questions.
type Prompter interface {
	// Select asks the user to pick one of choices.
	Select(ctx context.Context, message string, choices []string) (string, error)
	// Input asks for free text; an empty answer is allowed.
	Input(ctx context.Context, message string) (string, error)
}

// Configuration is the edit the wizard produced.
type Configuration struct {
	// Item names what was added, such as "devtool" or "output.filename".
	Item string
	// Options holds the top-level keys to merge into the config file.
	Options map[string]any
	// TopScope lists module imports the added options need.
	TopScope []string
}

// Result is the outcome of one wizard run.
type Result struct {
	Configuration Configuration
	// Dependencies are npm packages to install as dev dependencies.
	Dependencies []string
}

// ErrUnknownPackage is the cause of the error returned when a plugin is
// neither builtin nor published.
var ErrUnknownPackage = stderrors.New("package not found")

const defaultTopScope = "const webpack = require('webpack')"

var builtinPluginPattern = glob.MustCompile("*Plugin")

// Generator runs the add wizard.
type Generator struct {
	prompter Prompter
	checker  PackageChecker
	schema   *Schema
	builtins func() []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithPackageChecker replaces the npm registry check.
func WithPackageChecker(c PackageChecker) Option {
	return func(g *Generator) {
		g.checker = c
	}
}

// WithSchema replaces the embedded schema.
func WithSchema(s *Schema) Option {
	return func(g *Generator) {
		g.schema = s
	}
}

// WithBuiltinPlugins replaces the source of builtin plugin names.
func WithBuiltinPlugins(names func() []string) Option {
	return func(g *Generator) {
		g.builtins = names
	}
}

// NewGenerator returns a Generator asking questions through p.
func NewGenerator(p Prompter, opts ...Option) (*Generator, error) {
	g := &Generator{
		prompter: p,
		builtins: plugin.Names,
	}
	for _, o := range opts {
		o(g)
	}
	if g.checker == nil {
		g.checker = NewNpmChecker()
	}
	if g.schema == nil {
		s, err := NewSchema()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to load options schema", err)
		}
		g.schema = s
	}
	return g, nil
}

// Run asks which property to add and what to add to it.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		Configuration: Configuration{
			Options:  map[string]any{},
			TopScope: []string{defaultTopScope},
		},
	}

	action, err := g.prompter.Select(ctx, "What property do you want to add to?", Properties())
	if err != nil {
		return nil, promptError(err)
	}
	if !IsProperty(action) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unknown property "+action,
			map[string]any{"property": action})
	}

	choice := g.schema.Choices(action)
	question := fmt.Sprintf("what do you want to add to %s?", action)
	var answer string
	if choice.Deep() {
		answer, err = g.prompter.Select(ctx, question, choice.Options)
	} else {
		answer, err = g.prompter.Input(ctx, question)
	}
	if err != nil {
		return nil, promptError(err)
	}

	switch {
	case action == "plugins":
		err = g.addPlugin(ctx, res, answer)
	case choice.Deep():
		err = g.addDeep(ctx, res, action, answer)
	default:
		res.Configuration.Item = action
		res.Configuration.Options[action] = scalar(answer)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("wizard answered", "item", res.Configuration.Item, "dependencies", len(res.Dependencies))
	return res, nil
}

// addPlugin prefers a builtin plugin whose name contains answer and falls
// back to an npm package of that name.
func (g *Generator) addPlugin(ctx context.Context, res *Result, answer string) error {
	cfg := &res.Configuration
	if name, ok := g.matchBuiltin(answer); ok {
		cfg.Item = name
		cfg.Options["plugins"] = []any{map[string]any{"name": name}}
		return nil
	}

	exists, err := g.checker.Exists(ctx, answer)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to check package registry", err,
			map[string]any{"package": answer})
	}
	if !exists {
		return errors.WrapWithContext(errors.ErrCodeNotFound,
			answer+" doesn't exist on NPM or is built in webpack, please check for any misspellings.",
			ErrUnknownPackage, map[string]any{"package": answer})
	}

	name := PluginIdentifier(answer)
	res.Dependencies = append(res.Dependencies, answer)
	cfg.TopScope = append(cfg.TopScope, fmt.Sprintf("const %s = require(%q)", name, answer))
	cfg.Item = answer
	cfg.Options["plugins"] = []any{map[string]any{"name": name, "package": answer}}
	return nil
}

func (g *Generator) matchBuiltin(answer string) (string, bool) {
	term := strings.ToLower(answer)
	if term == "" {
		return "", false
	}
	for _, name := range g.builtins() {
		if builtinPluginPattern.Match(name) && strings.Contains(strings.ToLower(name), term) {
			return name, true
		}
	}
	return "", false
}

// addDeep handles properties with a list of sub-keys. devtool and watch
// take the picked value itself; "other" asks for a key, where an empty key
// sets the property directly.
func (g *Generator) addDeep(ctx context.Context, res *Result, action, picked string) error {
	cfg := &res.Configuration
	if picked != OtherChoice && (action == "devtool" || action == "watch") {
		cfg.Item = action
		cfg.Options[action] = scalar(picked)
		return nil
	}

	if picked != OtherChoice {
		value, err := g.prompter.Input(ctx, fmt.Sprintf("what do you want the value of %s to be?", picked))
		if err != nil {
			return promptError(err)
		}
		cfg.Item = action + "." + picked
		cfg.Options[action] = map[string]any{picked: scalar(value)}
		return nil
	}

	key, err := g.prompter.Input(ctx, fmt.Sprintf(
		"what do you want the key on %s to be? (press enter if you want it directly as a value on the property)", action))
	if err != nil {
		return promptError(err)
	}
	question := fmt.Sprintf("what do you want the value of %s to be?", key)
	if key == "" {
		question = fmt.Sprintf("what do you want to be the value of %s to be?", action)
	}
	value, err := g.prompter.Input(ctx, question)
	if err != nil {
		return promptError(err)
	}

	if key == "" {
		cfg.Item = action
		cfg.Options[action] = scalar(value)
		return nil
	}
	cfg.Item = action + "." + key
	cfg.Options[action] = map[string]any{key: scalar(value)}
	return nil
}

// PluginIdentifier derives the identifier a package's plugin is bound to:
// "-webpack-plugin" becomes "Plugin" and the first letter is upper-cased.
func PluginIdentifier(pkg string) string {
	name := strings.Replace(pkg, "-webpack-plugin", "Plugin", 1)
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return cases.Upper(language.Und).String(string(r)) + name[size:]
}

// scalar converts typed answers to booleans and numbers where they parse.
func scalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func promptError(err error) error {
	if errors.CodeOf(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidRequest, "prompt failed", err)
}

// Schema returns the options schema used for choices.
func (g *Generator) Schema() *Schema {
	return g.schema
}
