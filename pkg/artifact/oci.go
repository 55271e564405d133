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
	"crypto/tls"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
)

const (
	// ArtifactType is the OCI artifact type of a packaged model.
	ArtifactType = "application/vnd.nutrilens.model"

	// ModelMediaType is the layer media type of the model document.
	ModelMediaType = "application/vnd.nutrilens.model.v1"

	// DefaultTag is used when an oci:// location has no tag.
	DefaultTag = "latest"
)

// Reference is a parsed oci:// location.
type Reference struct {
	// Registry is the registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "org/food-rater").
	Repository string
	// Tag is the artifact tag.
	Tag string
}

// ParseReference parses oci://registry/repository[:tag].
func ParseReference(location string) (*Reference, error) {
	if !strings.HasPrefix(location, OCIURIScheme) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("OCI location must start with %s", OCIURIScheme))
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(location, OCIURIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}

	tag := DefaultTag
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// Repo returns registry/repository without the tag.
func (r *Reference) Repo() string {
	return r.Registry + "/" + r.Repository
}

// String returns the oci:// form of the reference.
func (r *Reference) String() string {
	return fmt.Sprintf("%s%s:%s", OCIURIScheme, r.Repo(), r.Tag)
}

func (f *Fetcher) fetchOCI(ctx context.Context, location string) (*Artifact, error) {
	ref, err := ParseReference(location)
	if err != nil {
		return nil, err
	}

	repo, err := newRepository(ref, f.plainHTTP, f.insecureTLS)
	if err != nil {
		return nil, err
	}

	return pull(ctx, repo, ref.Tag, location)
}

// pull copies the tagged artifact from src into a temporary file store and
// returns the first model document found in it.
func pull(ctx context.Context, src oras.ReadOnlyTarget, tag, source string) (*Artifact, error) {
	dir, err := os.MkdirTemp("", "nutrilens-pull-*")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create temp directory", err)
	}
	defer os.RemoveAll(dir)

	store, err := file.New(dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = store.Close() }()

	desc, err := oras.Copy(ctx, src, tag, store, tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "failed to pull OCI artifact", err,
			map[string]any{"location": source})
	}
	slog.Debug("pulled OCI artifact", "location", source, "manifest", desc.Digest.String())

	path, err := findModelFile(dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to read pulled artifact", err)
	}
	return newArtifact(filepath.Base(path), source, data), nil
}

// findModelFile returns the first *.yaml, *.yml or *.json file under dir
// in lexical order.
func findModelFile(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || found != "" {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json":
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to scan pulled artifact", err)
	}
	if found == "" {
		return "", apperrors.New(apperrors.ErrCodeNotFound, "OCI artifact contains no yaml or json file")
	}
	return found, nil
}

// PushOptions configures Push.
type PushOptions struct {
	// Path is the local model document to publish.
	Path string
	// Target is the oci:// destination.
	Target string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Annotations are added to the manifest.
	Annotations map[string]string
}

// PushResult describes a published artifact.
type PushResult struct {
	// Digest is the manifest digest.
	Digest string `json:"digest" yaml:"digest"`
	// Reference is the oci:// reference that was pushed.
	Reference string `json:"reference" yaml:"reference"`
}

// Push publishes a model document as a single-layer OCI artifact.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	ref, err := ParseReference(opts.Target)
	if err != nil {
		return nil, err
	}

	repo, err := newRepository(ref, opts.PlainHTTP, opts.InsecureTLS)
	if err != nil {
		return nil, err
	}

	return push(ctx, repo, ref, opts)
}

func push(ctx context.Context, dst oras.Target, ref *Reference, opts PushOptions) (*PushResult, error) {
	if !IsLocal(opts.Path) {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"only local model files can be pushed", map[string]any{"path": opts.Path})
	}
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve artifact path", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "artifact not found", err)
	}

	store, err := file.New(filepath.Dir(abs))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = store.Close() }()

	layer, err := store.Add(ctx, filepath.Base(abs), ModelMediaType, abs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to add artifact to store", err)
	}

	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layer},
		ManifestAnnotations: opts.Annotations,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}

	if err := store.Tag(ctx, manifest, ref.Tag); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest in local store", err)
	}

	desc, err := oras.Copy(ctx, store, ref.Tag, dst, ref.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push artifact to registry", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: ref.String(),
	}, nil
}

func newRepository(ref *Reference, plainHTTP, insecureTLS bool) (*remote.Repository, error) {
	repo, err := remote.NewRepository(ref.Repo())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = plainHTTP
	repo.Client = newAuthClient(plainHTTP, insecureTLS)
	return repo, nil
}

// newAuthClient creates a registry client with Docker credential support.
func newAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
