// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package configuration

// Config is the user level configuration
type Config struct {
	// CacheHome is the directory of the GitHub response cache
	CacheHome *string `yaml:"cacheHome,omitempty"`
	// ContentDir is the default documentation content directory
	ContentDir *string `yaml:"contentDir,omitempty"`
	// Sources holds the credentials per GitHub instance
	Sources []*Source `yaml:"sources,omitempty"`
}

// Source is a GitHub instance
type Source struct {
	Host        string `yaml:"host"`
	Credentials `yaml:"credentials,omitempty"`
}

// Credentials holds repository credential data
type Credentials struct {
	Username   *string `yaml:"username,omitempty"`
	OAuthToken *string `yaml:"oauthToken,omitempty"`
}
