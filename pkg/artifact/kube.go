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
	"os"
	"path/filepath"
	"strings"
	"sync"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/AakashTiwari-nitp/nutrilens/pkg/defaults"
	apperrors "github.com/AakashTiwari-nitp/nutrilens/pkg/errors"
)

// ConfigMap data keys searched for the artifact, in order.
var configMapKeys = []string{"model.yaml", "model.json"}

// KubeClientFunc returns a Kubernetes client.
type KubeClientFunc func() (kubernetes.Interface, error)

var (
	clientOnce   sync.Once
	cachedClient kubernetes.Interface
	clientErr    error
)

// GetKubeClient returns a process-wide Kubernetes client, creating it on first call.
func GetKubeClient() (kubernetes.Interface, error) {
	clientOnce.Do(func() {
		cachedClient, _, clientErr = BuildKubeClient("")
	})
	return cachedClient, clientErr
}

// BuildKubeClient creates a Kubernetes client from the given kubeconfig file.
// With an empty path the configuration is discovered from KUBECONFIG,
// ~/.kube/config if it exists, and finally the in-cluster service account.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	var config *rest.Config
	var err error

	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")

		if kubeconfig == "" {
			kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
			if _, err = os.Stat(kubeconfig); os.IsNotExist(err) {
				kubeconfig = ""
			}
		}
	}

	// Use InClusterConfig directly when no kubeconfig is available
	// This avoids the warning: "Neither --kubeconfig nor --master was specified"
	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
		}
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}

// parseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid ConfigMap URI: invalid name %q", name)
	}

	return namespace, name, nil
}

func (f *Fetcher) fetchConfigMap(ctx context.Context, uri string) (*Artifact, error) {
	namespace, name, err := parseConfigMapURI(uri)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid ConfigMap location", err)
	}

	client, err := f.kube()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to get kubernetes client", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ArtifactK8sTimeout)
	defer cancel()

	cm, err := client.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound, "failed to get ConfigMap", err,
			map[string]any{"namespace": namespace, "name": name})
	}

	for _, key := range configMapKeys {
		if data, ok := cm.Data[key]; ok {
			return newArtifact(key, uri, []byte(data)), nil
		}
		if data, ok := cm.BinaryData[key]; ok {
			return newArtifact(key, uri, data), nil
		}
	}

	return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound, "ConfigMap has no model data",
		map[string]any{"namespace": namespace, "name": name, "keys": configMapKeys})
}
