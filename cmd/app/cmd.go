// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"flag"
	"strings"
	"sync"

	"github.com/aiide/starforge/cmd/configuration"
	"github.com/aiide/starforge/cmd/gendocs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

var (
	vip          *viper.Viper
	klogFlagsSet sync.Once
)

// NewCommand creates a new root command and propagates
// the context to its Run callback closure
func NewCommand(ctx context.Context) *cobra.Command {
	vip = viper.New()
	vip.SetEnvPrefix("STARFORGE")
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()
	v := vip

	cmd := &cobra.Command{
		Use:   "starforge",
		Short: "Forge the Starlight configuration of a documentation site",
		Long: `Reads a site manifest with title, social links and an ordered sidebar of
links and groups, validates it and writes the Astro configuration
registering the Starlight integration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return exec(ctx, v, new(configuration.DefaultConfigurationLoader), cmd.OutOrStdout())
		},
	}

	configureFlags(cmd)

	version := NewVersionCmd()
	cmd.AddCommand(version)

	completion := newCompletionCmd()
	cmd.AddCommand(completion)
	genCmdDocs := gendocs.NewGenCmdDocs()
	cmd.AddCommand(genCmdDocs)

	klogFlagsSet.Do(func() {
		klog.InitFlags(nil)
	})
	AddFlags(cmd)

	return cmd
}

// AddFlags adds go flags to rootCmd
func AddFlags(rootCmd *cobra.Command) {
	flag.CommandLine.VisitAll(func(gf *flag.Flag) {
		rootCmd.Flags().AddGoFlag(gf)
	})
}
