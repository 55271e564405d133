// Copyright (c) 2026, The nutrilens Authors.  All rights reserved.
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

package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/defaults"
	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
	"github.com/AakashTiwari-nitp/nutrilens/pkg/serializer"
)

// URI schemes understood by Fetch.
const (
	ConfigMapURIScheme = "cm://"
	OCIURIScheme       = "oci://"
)

// Artifact is a fetched model document.
type Artifact struct {
	// Name is the file name used for format detection.
	Name string
	// Source is the location the artifact was fetched from.
	Source string
	// Data is the raw content.
	Data []byte
	// Digest is the sha256 digest of Data.
	Digest digest.Digest
}

func newArtifact(name, source string, data []byte) *Artifact {
	return &Artifact{
		Name:   name,
		Source: source,
		Data:   data,
		Digest: digest.FromBytes(data),
	}
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// Fetcher resolves artifact locations.
type Fetcher struct {
	http        *serializer.HttpReader
	kube        KubeClientFunc
	plainHTTP   bool
	insecureTLS bool
}

// WithHTTPReader sets the reader used for http(s) locations.
func WithHTTPReader(r *serializer.HttpReader) Option {
	return func(f *Fetcher) {
		f.http = r
	}
}

// WithKubeClient sets the client factory used for ConfigMap locations.
func WithKubeClient(fn KubeClientFunc) Option {
	return func(f *Fetcher) {
		f.kube = fn
	}
}

// WithPlainHTTP talks to OCI registries over plain HTTP.
func WithPlainHTTP(plain bool) Option {
	return func(f *Fetcher) {
		f.plainHTTP = plain
	}
}

// WithInsecureTLS skips registry certificate verification.
func WithInsecureTLS(insecure bool) Option {
	return func(f *Fetcher) {
		f.insecureTLS = insecure
	}
}

// NewFetcher returns a Fetcher with default HTTP and Kubernetes clients.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		http: serializer.NewHttpReader(),
		kube: GetKubeClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves location with a default Fetcher.
func Fetch(ctx context.Context, location string) (*Artifact, error) {
	return NewFetcher().Fetch(ctx, location)
}

// Fetch resolves location and returns its content.
func (f *Fetcher) Fetch(ctx context.Context, location string) (*Artifact, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "artifact location is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ArtifactFetchTimeout)
	defer cancel()

	slog.Debug("fetching artifact", "location", location)

	var (
		a   *Artifact
		err error
	)
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		a, err = f.fetchHTTP(ctx, location)
	case strings.HasPrefix(location, ConfigMapURIScheme):
		a, err = f.fetchConfigMap(ctx, location)
	case strings.HasPrefix(location, OCIURIScheme):
		a, err = f.fetchOCI(ctx, location)
	default:
		a, err = fetchFile(location)
	}
	if err != nil {
		return nil, err
	}

	if len(a.Data) > defaults.ArtifactMaxBytes {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "artifact too large",
			map[string]any{"location": location, "bytes": len(a.Data)})
	}

	slog.Debug("artifact fetched", "location", location, "bytes", len(a.Data), "digest", a.Digest.String())
	return a, nil
}

// IsLocal reports whether location names a file on disk rather than an
// http(s), ConfigMap or OCI source.
func IsLocal(location string) bool {
	location = strings.TrimSpace(location)
	for _, scheme := range []string{"http://", "https://", ConfigMapURIScheme, OCIURIScheme} {
		if strings.HasPrefix(location, scheme) {
			return false
		}
	}
	return location != ""
}

func fetchFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "artifact not found", err,
				map[string]any{"path": path})
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to read artifact", err)
	}
	return newArtifact(filepath.Base(path), path, data), nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) (*Artifact, error) {
	data, err := f.http.ReadWithContext(ctx, url)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, fmt.Sprintf("failed to download %s", url), err)
	}

	name := url
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return newArtifact(filepath.Base(name), url, data), nil
}
