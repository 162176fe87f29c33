// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/spf13/cobra"
)

func configureFlags(command *cobra.Command) {
	command.Flags().StringP("manifest", "f", "",
		"Site manifest path. Holds title, social links and sidebar in YAML or JSON.")
	_ = vip.BindPFlag("manifest", command.Flags().Lookup("manifest"))

	command.Flags().StringP("destination", "d", ".",
		"Destination path. The root of the Starlight project.")
	_ = vip.BindPFlag("destination", command.Flags().Lookup("destination"))

	command.Flags().String("output-file", "",
		"Output file path relative to the destination. Defaults to astro.config.mjs, site.json or site.yaml depending on --format.")
	_ = vip.BindPFlag("output-file", command.Flags().Lookup("output-file"))

	command.Flags().String("format", formatMJS,
		"Output format. Must be one of: `mjs` (Astro configuration), `json` or `yaml` (site configuration).")
	_ = vip.BindPFlag("format", command.Flags().Lookup("format"))

	command.Flags().String("content-dir", "",
		"Documentation content directory. Defaults to <destination>/src/content/docs.")
	_ = vip.BindPFlag("content-dir", command.Flags().Lookup("content-dir"))

	command.Flags().Bool("check-content", false,
		"Checks that every sidebar slug resolves to a page and every autogenerate directory exists in the content directory.")
	_ = vip.BindPFlag("check-content", command.Flags().Lookup("check-content"))

	command.Flags().Bool("expand-autogenerate", false,
		"Replaces autogenerated sidebar groups with the pages of their content directory.")
	_ = vip.BindPFlag("expand-autogenerate", command.Flags().Lookup("expand-autogenerate"))

	command.Flags().Bool("check-social", false,
		"Checks that social links pointing at GitHub repositories reference existing repositories.")
	_ = vip.BindPFlag("check-social", command.Flags().Lookup("check-social"))

	command.Flags().Int("social-check-workers", 4,
		"Number of parallel workers checking social links.")
	_ = vip.BindPFlag("social-check-workers", command.Flags().Lookup("social-check-workers"))

	command.Flags().StringToString("github-oauth-token-map", map[string]string{},
		"GitHub personal tokens authorizing read access from repositories per GitHub instance (e.g. github.com=<token>). Overrides the tokens of the configuration file.")
	_ = vip.BindPFlag("github-oauth-token-map", command.Flags().Lookup("github-oauth-token-map"))

	command.Flags().String("cache-dir", "",
		"Cache directory, used for GitHub response cache. Defaults to $HOME/.starforge/cache.")
	_ = vip.BindPFlag("cache-dir", command.Flags().Lookup("cache-dir"))

	command.Flags().Bool("dry-run", false,
		"Runs the command end-to-end but instead of writing files, it will output the projected file/folder hierarchy and the file content to the standard output.")
	_ = vip.BindPFlag("dry-run", command.Flags().Lookup("dry-run"))

	command.Flags().Bool("resolve", false,
		"Prints the resolved site configuration to the standard output.")
	_ = vip.BindPFlag("resolve", command.Flags().Lookup("resolve"))

	command.Flags().Bool("watch", false,
		"Rebuilds when the manifest or the content directory changes, until interrupted.")
	_ = vip.BindPFlag("watch", command.Flags().Lookup("watch"))
}
