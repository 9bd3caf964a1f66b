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

package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/packcfg/packcfg/pkg/argv"
	"github.com/packcfg/packcfg/pkg/config"
	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/merger"
	"github.com/packcfg/packcfg/pkg/serializer"
)

func buildCmd() *cli.Command {
	flags := pipelineFlags()
	flags = append(flags, outputFlag, formatFlag, kubeconfigFlag, metricsFileFlag)

	return &cli.Command{
		Name:                      "build",
		DisableSliceFlagSeparator: true,
		EnableShellCompletion:     true,
		Usage:                     "Merge command-line flags into the bundler configuration",
		ArgsUsage:                 "[entry...] [output]",
		Description: `Locates and loads the configuration file, then applies every command-line
flag on top of it and prints the resulting build options.

Config files are looked up in the working directory as webpack.config.<ext>
or webpackfile.<ext> unless --config is given. Supported extensions:
.json, .yaml, .yml, .toml, .hcl, .tmpl.json and .tmpl.yaml. --config also
accepts HTTP/HTTPS URLs and ConfigMap URIs (cm://namespace/name).

Positional arguments are entry points; when no output filename is
configured, the last one is used as the output path.

# Examples

Merge flags into the config in the current directory:
  packcfg build --devtool source-map --define DEBUG=false

Build options without a config file:
  packcfg build ./src/index.js dist/bundle.js

Production options from a remote config, written to a ConfigMap:
  packcfg build -p --config https://example.com/webpack.config.yaml \
    --output cm://build/webpack-options`,
		Flags:  flags,
		Action: runBuild,
	}
}

// pipelineFlags turns the merger's flag table into CLI flags. Repeatable
// flags keep every occurrence; boolean flags are only forwarded when set.
func pipelineFlags() []cli.Flag {
	var flags []cli.Flag
	for _, f := range merger.Flags() {
		if f.Kind.IsBool() {
			flags = append(flags, &cli.BoolFlag{Name: f.Name, Usage: f.Usage})
			continue
		}
		flags = append(flags, &cli.StringSliceFlag{Name: f.Name, Usage: f.Usage})
	}
	return flags
}

// argumentsFrom collects the parsed pipeline flags and positionals.
func argumentsFrom(cmd *cli.Command) *argv.Arguments {
	a := argv.New()
	for _, f := range merger.Flags() {
		if !cmd.IsSet(f.Name) {
			continue
		}
		if f.Kind.IsBool() {
			a.Append(f.Name, argv.Bool(cmd.Bool(f.Name)))
			continue
		}
		for _, v := range cmd.StringSlice(f.Name) {
			a.Append(f.Name, argv.String(v))
		}
	}
	a.Positional = cmd.Args().Slice()
	return a
}

func runBuild(ctx context.Context, cmd *cli.Command) (err error) {
	defer func() {
		if merr := writeMetrics(cmd); merr != nil && err == nil {
			err = merr
		}
	}()

	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigLoadTimeout)
	defer cancel()

	loader := config.NewLoader(
		config.WithFetcher(config.NewRemoteFetcher(cmd.String(kubeconfigFlag.Name),
			serializer.WithUserAgent(userAgent()),
			serializer.WithTotalTimeout(defaults.ConfigFetchTimeout),
		)),
	)
	res, err := merger.Convert(ctx, argumentsFrom(cmd), merger.Options{Loader: loader})
	if err != nil {
		return err
	}
	slog.Debug("build options ready", "configs", len(res.Configs), "loaded", res.Loaded)

	w, err := newOutputWriter(cmd, format)
	if err != nil {
		return err
	}
	return writeResult(ctx, w, res.Value())
}
