// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"runtime"

	"github.com/aiide/starforge/pkg/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command. It reports the starforge
// version together with the Go runtime and platform it was built for.
func NewVersionCmd() *cobra.Command {
	var short bool
	command := &cobra.Command{
		Use:   "version",
		Short: "Print the starforge version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "starforge %s (%s %s/%s)\n", version.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	command.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return command
}
