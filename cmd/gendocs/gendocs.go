// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package gendocs

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aiide/starforge/pkg/content"
	"github.com/aiide/starforge/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// DefaultDestination is the command reference section of the Starlight content tree
var DefaultDestination = path.Join(content.DefaultDir, "reference", "commands")

const (
	genDocsMarkdown genDocsFormat = iota
	genDocsManPages
)

type genDocsFormat int

func newGenDocsFormat(formatString string) (genDocsFormat, error) {
	switch formatString {
	case "md":
		return genDocsMarkdown, nil
	case "man":
		return genDocsManPages, nil
	}
	return 0, fmt.Errorf("unknown format '%s'. Must be one of %v", formatString, []string{"md", "man"})
}

// NewGenCmdDocs generates the command reference as Starlight
// pages or as man pages
func NewGenCmdDocs() *cobra.Command {
	var format, destination string
	command := &cobra.Command{
		Use:   "gen-cmd-docs",
		Short: "Generates the command reference",
		Long: `Generates the command reference. Markdown pages carry the frontmatter
Starlight requires and link each other by slug, so the default destination
can be listed with an autogenerate sidebar group.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return genCmdDocs(cmd.Root(), format, destination)
		},
	}
	command.Flags().StringVarP(&format, "format", "f", "md",
		"Specifies the generated documentation format. Must be one of: `md` (Starlight pages) or `man` (man pages).")
	command.Flags().StringVarP(&destination, "destination", "d", DefaultDestination,
		"Path to directory where the documentation will be generated. If it does not exist, it will be created.")
	return command
}

func genCmdDocs(root *cobra.Command, formatString string, destination string) error {
	format, err := newGenDocsFormat(formatString)
	if err != nil {
		return err
	}
	destination = filepath.Clean(destination)
	if err = os.MkdirAll(destination, os.ModePerm); err != nil {
		return fmt.Errorf("can't create command reference directory %s: %w", destination, err)
	}
	root.DisableAutoGenTag = true
	if format == genDocsManPages {
		return doc.GenManTree(root, manHeader(root), destination)
	}
	return doc.GenMarkdownTreeCustom(root, destination, frontmatter, pageLink)
}

func manHeader(root *cobra.Command) *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   strings.ToUpper(root.Name()),
		Section: "1",
		Source:  fmt.Sprintf("%s %s", root.Name(), version.Version),
		Manual:  "Starforge Command Reference",
	}
}

// frontmatter titles a command page after its command path
func frontmatter(filename string) string {
	command := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(filename), ".md"), "_", " ")
	return fmt.Sprintf("---\ntitle: %s\ndescription: Command reference of %s\n---\n\n", command, command)
}

// pageLink points at the slug of a sibling command page
func pageLink(name string) string {
	return "../" + content.Slug(name) + "/"
}
