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
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/packcfg/packcfg/pkg/config"
	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/serializer"
	"github.com/packcfg/packcfg/pkg/wizard"
)

// defaultAddTarget is created by add when no config file exists.
const defaultAddTarget = "webpack.config.yaml"

func addCmd() *cli.Command {
	return &cli.Command{
		Name:                      "add",
		DisableSliceFlagSeparator: true,
		EnableShellCompletion:     true,
		Usage:                     "Interactively add a property to the configuration file",
		Description: `Asks which top-level property to add to and what to put there, then merges
the answer into the configuration file. Only JSON and YAML files can be
edited. When no configuration file is found, webpack.config.yaml is created
in the working directory.

Plugins are matched against the builtin plugins first; anything else is
looked up in the npm registry and reported as a dev dependency to install.

# Examples

Edit the config file found in the current directory:
  packcfg add

Edit a specific file:
  packcfg add --config build/webpack.config.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file to edit (default: the located config file)",
			},
			&cli.StringFlag{
				Name:    "registry",
				Usage:   "npm registry used to check plugin packages",
				Value:   defaults.NpmRegistryURL,
				Sources: cli.EnvVars("NPM_CONFIG_REGISTRY"),
			},
		},
		Action: runAdd,
	}
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	path, err := addTarget(cmd.String("config"))
	if err != nil {
		return err
	}

	out := stderr(cmd)
	gen, err := wizard.NewGenerator(
		newLinePrompter(stdin(cmd), out),
		wizard.WithPackageChecker(wizard.NewNpmChecker(
			wizard.WithRegistry(cmd.String("registry")),
			wizard.WithReaderOptions(serializer.WithUserAgent(userAgent())),
		)),
	)
	if err != nil {
		return err
	}

	res, err := gen.Run(ctx)
	if stderrors.Is(err, wizard.ErrUnknownPackage) {
		// Not finding the package ends the wizard without an error status.
		var se *errors.StructuredError
		if stderrors.As(err, &se) {
			fmt.Fprintln(out, se.Message)
		}
		return nil
	}
	if err != nil {
		return err
	}

	applied, err := wizard.Apply(path, res.Configuration, gen.Schema())
	if err != nil {
		return err
	}

	w := stdout(cmd)
	verb := "Updated"
	if applied.Created {
		verb = "Created"
	}
	fmt.Fprintf(w, "%s %s: added %s\n", verb, applied.Path, res.Configuration.Item)
	for _, warning := range applied.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if len(res.Dependencies) > 0 {
		fmt.Fprintln(w, "Plugin imports:")
		for _, line := range res.Configuration.TopScope[1:] {
			fmt.Fprintf(w, "  %s\n", line)
		}
		fmt.Fprintf(w, "Install the dependencies with: npm install --save-dev %s\n", strings.Join(res.Dependencies, " "))
	}
	return nil
}

// addTarget picks the file to edit: the explicit path, else the first
// local config file the locator finds, else a new YAML file.
func addTarget(explicit string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to get working directory", err)
	}
	if explicit != "" {
		if config.IsRemotePath(explicit) {
			return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "remote config files cannot be edited",
				map[string]any{"path": explicit})
		}
		if filepath.IsAbs(explicit) {
			return explicit, nil
		}
		return filepath.Join(wd, explicit), nil
	}

	for _, d := range config.NewLocator(wd).Locate(nil) {
		if !d.IsRemote() {
			return d.Path, nil
		}
	}
	return filepath.Join(wd, defaultAddTarget), nil
}

// errorMessage renders err for the terminal without the code prefix.
func errorMessage(err error) string {
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		if se.Cause == nil {
			return se.Message
		}
		return fmt.Sprintf("%s: %v", se.Message, se.Cause)
	}
	return err.Error()
}
