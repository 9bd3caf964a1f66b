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
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/k8s/client"
	"github.com/packcfg/packcfg/pkg/serializer"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Where to write the result (default: stdout).
	Supports: file paths or ConfigMap URIs (cm://namespace/name).`,
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to kubeconfig used for cm:// config sources and output",
		Sources: cli.EnvVars("KUBECONFIG"),
	}

	metricsFileFlag = &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "Write pipeline metrics in Prometheus text format to this file",
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
)

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String(formatFlag.Name))
	if f.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", f), map[string]any{"format": string(f)})
	}
	return f, nil
}

// newOutputWriter returns the serializer for --output. ConfigMap output
// uses the client for --kubeconfig.
func newOutputWriter(cmd *cli.Command, format serializer.Format) (serializer.Serializer, error) {
	out := strings.TrimSpace(cmd.String(outputFlag.Name))
	if out == "" {
		return serializer.NewWriter(format, stdout(cmd)), nil
	}
	if !serializer.IsConfigMapURI(out) {
		w, err := serializer.NewFileWriter(format, out)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "cannot write output file", err,
				map[string]any{"path": out})
		}
		return w, nil
	}

	ns, name, err := serializer.ParseConfigMapURI(out)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid output URI", err)
	}
	k8s, err := client.ForKubeconfig(cmd.String(kubeconfigFlag.Name))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to create kubernetes client", err)
	}
	return serializer.NewConfigMapWriter(ns, name, format).WithClient(k8s), nil
}

func writeResult(ctx context.Context, w serializer.Serializer, v any) error {
	if c, ok := w.(serializer.Closer); ok {
		defer c.Close()
	}
	if err := w.Serialize(ctx, v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to write result", err)
	}
	return nil
}

// writeMetrics dumps the default registry when --metrics-file is set.
func writeMetrics(cmd *cli.Command) error {
	path := cmd.String(metricsFileFlag.Name)
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to write metrics", err,
			map[string]any{"path": path})
	}
	return nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
