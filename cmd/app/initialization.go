// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aiide/starforge/cmd/configuration"
	"github.com/aiide/starforge/pkg/content"
	"github.com/aiide/starforge/pkg/registry/repositoryhost"
	"github.com/aiide/starforge/pkg/site"
	"github.com/hashicorp/go-multierror"
	"k8s.io/klog/v2"
)

// completeOptions validates the options and fills the unset ones
// from the user configuration and defaults
func completeOptions(o *options, config *configuration.Config) error {
	if config == nil {
		config = &configuration.Config{}
	}
	if strings.TrimSpace(o.ManifestPath) == "" {
		return errors.New("manifest path is required")
	}
	if o.DestinationPath == "" {
		o.DestinationPath = "."
	}
	o.Format = strings.ToLower(o.Format)
	switch o.Format {
	case "", formatMJS:
		o.Format = formatMJS
	case "yml":
		o.Format = site.FormatYAML
	case site.FormatYAML, site.FormatJSON:
	default:
		return fmt.Errorf("unknown format '%s'. Must be one of %v", o.Format, []string{formatMJS, site.FormatJSON, site.FormatYAML})
	}
	if o.OutputFile == "" {
		o.OutputFile = defaultOutputFile(o.Format)
	}
	if filepath.IsAbs(o.OutputFile) || strings.HasPrefix(filepath.Clean(o.OutputFile), "..") {
		return fmt.Errorf("output file %s must be relative to the destination", o.OutputFile)
	}
	if o.ContentDir == "" {
		if config.ContentDir != nil {
			o.ContentDir = *config.ContentDir
		} else {
			o.ContentDir = filepath.Join(o.DestinationPath, content.DefaultDir)
		}
	}
	o.CacheHomeDir = cacheHomeDir(o.CacheHomeDir, config)
	o.Credentials = gatherCredentials(o.Credentials, config)
	return nil
}

func defaultOutputFile(format string) string {
	switch format {
	case site.FormatJSON:
		return "site.json"
	case site.FormatYAML:
		return "site.yaml"
	default:
		return "astro.config.mjs"
	}
}

func cacheHomeDir(cacheDir string, config *configuration.Config) string {
	if cacheDir != "" {
		return cacheDir
	}
	if config.CacheHome != nil {
		return *config.CacheHome
	}
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		klog.Warningf("GitHub responses won't be cached: %v\n", err)
		return ""
	}
	// default value $HOME/.starforge/cache
	return filepath.Join(userHomeDir, configuration.StarforgeHomeDir, "cache")
}

// gatherCredentials merges the tokens of the configuration file and the flags, flags take precedence
func gatherCredentials(flagTokens map[string]string, config *configuration.Config) map[string]string {
	tokensByHost := map[string]string{}
	for _, source := range config.Sources {
		// when no token specified consider the configuration incorrect
		if source.OAuthToken == nil {
			klog.Warningf("configuration is considered incorrect because of missing oauth token for host: %s\n", source.Host)
			continue
		}
		tokensByHost[source.Host] = *source.OAuthToken
	}
	for instance, credentials := range flagTokens {
		// for cases where user credentials are in the format `username:token`
		usernameAndToken := strings.Split(credentials, ":")
		if len(usernameAndToken) == 2 {
			credentials = usernameAndToken[1]
		}
		if _, ok := tokensByHost[instance]; ok {
			klog.Warningf("%s token is overridden by the provided token with `--github-oauth-token-map flag`\n", instance)
		}
		tokensByHost[instance] = credentials
	}
	if _, ok := tokensByHost["github.com"]; !ok {
		klog.V(2).Infof("using unauthenticated github access\n")
		tokensByHost["github.com"] = ""
	}
	return tokensByHost
}

func initRepositoryHosts(ctx context.Context, o repositoryhost.InitOptions) ([]repositoryhost.Interface, error) {
	var (
		rhs  []repositoryhost.Interface
		errs *multierror.Error
	)
	hosts := make([]string, 0, len(o.Credentials))
	for host := range o.Credentials {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	for _, host := range hosts {
		instance := host
		if !strings.HasPrefix(instance, "https://") && !strings.HasPrefix(instance, "http://") {
			instance = "https://" + instance
		}
		u, err := url.Parse(instance)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("couldn't parse url: %s", instance))
			continue
		}
		cachePath := ""
		if o.CacheHomeDir != "" {
			cachePath = filepath.Join(o.CacheHomeDir, "diskv", u.Host)
		}
		client, _, err := repositoryhost.BuildClient(ctx, o.Credentials[host], instance, cachePath)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		rhs = append(rhs, repositoryhost.NewGitHub(u.Host, client))
	}
	if len(rhs) == 0 {
		errs = multierror.Append(errs, errors.New("no repository hosts were loaded. Is the config yaml file correct?"))
	}
	return rhs, errs.ErrorOrNil()
}
