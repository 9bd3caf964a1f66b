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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/logging"
)

const (
	name           = "packcfg"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// userAgent identifies packcfg to config servers and the npm registry.
func userAgent() string {
	return name + "/" + version
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Bundler configuration from command-line flags",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `packcfg turns bundler command-line flags into build options.

build - merge flags into the located config file and print the result.
add   - interactively add a property to the config file.`,
		// --define a=1,2 is one value.
		DisableSliceFlagSeparator: true,
		EnableShellCompletion:     true,
		Flags: []cli.Flag{
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := cmd.String(logLevelFlag.Name)
			logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			slog.Debug("starting", "name", name, "version", version, "commit", commit, "date", date, "logLevel", level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			buildCmd(),
			addCmd(),
		},
	}
}

// Execute runs the CLI and terminates the process with the exit status the
// error maps to. This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		cancel()
		os.Exit(errors.ExitCode(err))
	}
}

func run(ctx context.Context, args []string) error {
	return newRootCmd().Run(ctx, normalizeArgs(args))
}
