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
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/packcfg/packcfg/pkg/defaults"
)

// DefaultMaxBytes caps the size of a fetched document.
const DefaultMaxBytes int64 = 4 << 20

// DefaultUserAgent is sent unless WithUserAgent overrides it.
const DefaultUserAgent = "packcfg"

// StatusError is returned by ReadWithContext for any non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: status %s", e.URL, e.Status)
}

// HttpReaderOption configures an HttpReader.
type HttpReaderOption func(*HttpReader)

// HttpReader fetches remote config files and registry documents.
type HttpReader struct {
	userAgent string
	accept    string
	maxBytes  int64
	client    *http.Client
}

// WithUserAgent sets the User-Agent header, e.g. "packcfg/v1.2.0".
func WithUserAgent(userAgent string) HttpReaderOption {
	return func(r *HttpReader) {
		if userAgent != "" {
			r.userAgent = userAgent
		}
	}
}

// WithTotalTimeout bounds each request, including reading the body.
func WithTotalTimeout(timeout time.Duration) HttpReaderOption {
	return func(r *HttpReader) {
		if timeout > 0 {
			r.client.Timeout = timeout
		}
	}
}

// WithAccept sets the Accept header.
func WithAccept(mediaType string) HttpReaderOption {
	return func(r *HttpReader) {
		r.accept = mediaType
	}
}

// WithMaxBytes caps the response body; larger responses fail.
func WithMaxBytes(n int64) HttpReaderOption {
	return func(r *HttpReader) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// WithClient replaces the HTTP client. A later WithTotalTimeout sets the
// timeout of this client.
func WithClient(client *http.Client) HttpReaderOption {
	return func(r *HttpReader) {
		if client != nil {
			r.client = client
		}
	}
}

// NewHttpReader creates an HttpReader with pooled connections and the
// per-phase timeouts from the defaults package.
func NewHttpReader(options ...HttpReaderOption) *HttpReader {
	r := &HttpReader{
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
		client: &http.Client{
			Timeout:   defaults.HTTPClientTimeout,
			Transport: newTransport(),
		},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		MaxIdleConnsPerHost:   2,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// UserAgent returns the User-Agent header sent with each request.
func (r *HttpReader) UserAgent() string { return r.userAgent }

// ReadWithContext GETs rawURL and returns the body. Only http and https
// URLs are accepted.
func (r *HttpReader) ReadWithContext(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url %q: scheme must be http or https", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	if r.accept != "" {
		req.Header.Set("Accept", r.accept)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", rawURL, r.maxBytes)
	}
	return data, nil
}
