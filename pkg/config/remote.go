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
	"context"
	stderrors "errors"
	"net/http"

	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/k8s/client"
	"github.com/packcfg/packcfg/pkg/serializer"
)

// Fetcher retrieves the bytes of a remote config source.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// RemoteFetcher reads http(s) URLs with the serializer HTTP reader and
// cm://namespace/name URIs from the Kubernetes API.
type RemoteFetcher struct {
	http       *serializer.HttpReader
	kubeconfig string
	k8s        client.Interface
}

// NewRemoteFetcher creates a RemoteFetcher. An empty kubeconfig uses the
// default client resolution.
func NewRemoteFetcher(kubeconfig string, opts ...serializer.HttpReaderOption) *RemoteFetcher {
	return &RemoteFetcher{
		http:       serializer.NewHttpReader(opts...),
		kubeconfig: kubeconfig,
	}
}

// WithKubeClient sets the client used for ConfigMap sources.
func (f *RemoteFetcher) WithKubeClient(c client.Interface) *RemoteFetcher {
	f.k8s = c
	return f
}

// Fetch implements Fetcher.
func (f *RemoteFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if serializer.IsConfigMapURI(uri) {
		return f.fetchConfigMap(ctx, uri)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigFetchTimeout)
	defer cancel()

	data, err := f.http.ReadWithContext(ctx, uri)
	if err != nil {
		var se *serializer.StatusError
		if stderrors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "config not found", err,
				map[string]any{"uri": uri})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "failed to fetch config", err,
			map[string]any{"uri": uri})
	}
	return data, nil
}

func (f *RemoteFetcher) fetchConfigMap(ctx context.Context, uri string) ([]byte, error) {
	namespace, name, err := serializer.ParseConfigMapURI(uri)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid ConfigMap URI", err)
	}

	k8s := f.k8s
	if k8s == nil {
		k8s, err = client.ForKubeconfig(f.kubeconfig)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to create kubernetes client", err)
		}
	}

	data, _, err := serializer.ReadConfigMap(ctx, k8s, namespace, name)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to read config ConfigMap", err,
			map[string]any{"namespace": namespace, "name": name})
	}
	return data, nil
}
