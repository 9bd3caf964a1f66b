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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/k8s/client"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"
)

// ConfigMapDataKey is the data key prefix for serialized content; the
// full key is "<prefix>.<yaml|json|txt>".
const ConfigMapDataKey = "config"

// ConfigMapWriter writes serialized data to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
	client    client.Interface
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
	}
}

// WithClient sets the Kubernetes client; without one the cached default
// client is used.
func (w *ConfigMapWriter) WithClient(c client.Interface) *ConfigMapWriter {
	w.client = c
	return w
}

// Serialize writes data to a ConfigMap.
// The ConfigMap will have:
// - data.config.{yaml|json|txt}: The serialized content
// - data.format: The format used
// - data.timestamp: RFC 3339 timestamp of the write
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	k8s := w.client
	if k8s == nil {
		c, _, err := client.GetKubeClient()
		if err != nil {
			return fmt.Errorf("failed to get kubernetes client: %w", err)
		}
		k8s = c
	}

	if w.format.IsUnknown() {
		return fmt.Errorf("unsupported format for ConfigMap: %s", w.format)
	}
	content, err := encode(w.format, data)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	configMapData := map[string]string{
		fmt.Sprintf("%s.%s", ConfigMapDataKey, w.format.Extension()): string(content),
		"format":    string(w.format),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "packcfg",
			"app.kubernetes.io/component": "build-options",
		}).
		WithData(configMapData)

	// Server-Side Apply gives an atomic create-or-update.
	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	_, err = k8s.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: "packcfg",
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap: %w", err)
	}

	return nil
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
// This method exists to satisfy the Closer interface.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ReadConfigMap returns the serialized content stored in a ConfigMap and its
// format. The "format" data key selects "config.<format>"; without it the
// yaml, json and txt keys are tried in that order.
func ReadConfigMap(ctx context.Context, k8s client.Interface, namespace, name string) ([]byte, Format, error) {
	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := k8s.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	if f, ok := cm.Data["format"]; ok {
		format := Format(f)
		if content, ok := cm.Data[fmt.Sprintf("%s.%s", ConfigMapDataKey, configMapExtension(format))]; ok {
			return []byte(content), format, nil
		}
	}

	for _, format := range []Format{FormatYAML, FormatJSON, FormatTable} {
		if content, ok := cm.Data[fmt.Sprintf("%s.%s", ConfigMapDataKey, configMapExtension(format))]; ok {
			slog.Debug("reading from ConfigMap",
				"namespace", namespace,
				"name", name,
				"format", format,
				"size", len(content))
			return []byte(content), format, nil
		}
	}

	return nil, "", fmt.Errorf("ConfigMap %s/%s has no %s data", namespace, name, ConfigMapDataKey)
}

func configMapExtension(f Format) string {
	if f == FormatTable {
		return "txt"
	}
	return string(f)
}

// IsConfigMapURI reports whether uri uses the cm:// scheme.
func IsConfigMapURI(uri string) bool {
	return strings.HasPrefix(uri, ConfigMapURIScheme)
}

// ParseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name
// and returns the namespace and name components.
// Returns an error if the URI is malformed.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}

	return namespace, name, nil
}
