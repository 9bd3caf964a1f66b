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
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/serializer"
)

// PackageChecker reports whether a package is published.
type PackageChecker interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// NpmChecker looks packages up in an npm registry.
type NpmChecker struct {
	registry   string
	reader     *serializer.HttpReader
	readerOpts []serializer.HttpReaderOption
}

// npmMetadataType asks the registry for the abbreviated package document.
const npmMetadataType = "application/vnd.npm.install-v1+json"

// NpmOption configures an NpmChecker.
type NpmOption func(*NpmChecker)

// WithRegistry overrides the registry base URL.
func WithRegistry(u string) NpmOption {
	return func(c *NpmChecker) {
		c.registry = strings.TrimSuffix(u, "/")
	}
}

// WithHttpReader replaces the HTTP reader.
func WithHttpReader(r *serializer.HttpReader) NpmOption {
	return func(c *NpmChecker) {
		c.reader = r
	}
}

// WithReaderOptions adds options to the default HTTP reader, such as a
// User-Agent. They are ignored when WithHttpReader is used.
func WithReaderOptions(opts ...serializer.HttpReaderOption) NpmOption {
	return func(c *NpmChecker) {
		c.readerOpts = append(c.readerOpts, opts...)
	}
}

// NewNpmChecker returns a checker against defaults.NpmRegistryURL.
func NewNpmChecker(opts ...NpmOption) *NpmChecker {
	c := &NpmChecker{registry: defaults.NpmRegistryURL}
	for _, o := range opts {
		o(c)
	}
	if c.reader == nil {
		base := []serializer.HttpReaderOption{
			serializer.WithTotalTimeout(defaults.PackageCheckTimeout),
			serializer.WithAccept(npmMetadataType),
		}
		c.reader = serializer.NewHttpReader(append(base, c.readerOpts...)...)
	}
	return c
}

// Exists fetches the package document. A 404, or a document with an
// "error" field, means the package does not exist.
func (c *NpmChecker) Exists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.PackageCheckTimeout)
	defer cancel()

	data, err := c.reader.ReadWithContext(ctx, c.registry+"/"+url.PathEscape(name))
	if err != nil {
		var se *serializer.StatusError
		if stderrors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}

	var doc struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return false, err
	}
	return doc.Error == "", nil
}
