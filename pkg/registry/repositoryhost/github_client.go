// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package repositoryhost

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/google/go-github/v43/github"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/peterbourgon/diskv"
	"golang.org/x/oauth2"
)

// BuildClient creates a GitHub client for an instance (e.g. https://github.com).
// Responses are cached on disk under cachePath when it is set.
func BuildClient(ctx context.Context, accessToken string, instance string, cachePath string) (*github.Client, *http.Client, error) {
	base := http.DefaultTransport
	if len(accessToken) > 0 {
		// if token provided replace base RoundTripper
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		base = oauth2.NewClient(ctx, ts).Transport
	}

	httpClient := &http.Client{Transport: base}
	if cachePath != "" {
		flatTransform := func(s string) []string { return []string{} }
		d := diskv.New(diskv.Options{
			BasePath:     filepath.Clean(cachePath),
			Transform:    flatTransform,
			CacheSizeMax: 100 * 1024 * 1024,
		})
		cacheTransport := &httpcache.Transport{
			Transport:           base,
			Cache:               diskcache.NewWithDiskv(d),
			MarkCachedResponses: true,
		}
		httpClient = cacheTransport.Client()
	}

	if instance == "https://github.com" {
		return github.NewClient(httpClient), httpClient, nil
	}
	client, err := github.NewEnterpriseClient(instance, "", httpClient)
	return client, httpClient, err
}
