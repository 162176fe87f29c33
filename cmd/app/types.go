// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/aiide/starforge/pkg/registry/repositoryhost"
)

// formatMJS is the Astro configuration output format
const formatMJS = "mjs"

// options encapsulates the parameters of a build
type options struct {
	ManifestPath               string `mapstructure:"manifest"`
	DestinationPath            string `mapstructure:"destination"`
	OutputFile                 string `mapstructure:"output-file"`
	Format                     string `mapstructure:"format"`
	ContentDir                 string `mapstructure:"content-dir"`
	CheckContent               bool   `mapstructure:"check-content"`
	ExpandAutogenerate         bool   `mapstructure:"expand-autogenerate"`
	CheckSocial                bool   `mapstructure:"check-social"`
	SocialCheckWorkers         int    `mapstructure:"social-check-workers"`
	DryRun                     bool   `mapstructure:"dry-run"`
	Resolve                    bool   `mapstructure:"resolve"`
	Watch                      bool   `mapstructure:"watch"`
	repositoryhost.InitOptions `mapstructure:",squash"`
}

// needsContent reports if the build reads the content directory
func (o *options) needsContent() bool {
	return o.CheckContent || o.ExpandAutogenerate
}
