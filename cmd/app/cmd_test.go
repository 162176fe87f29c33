// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/aiide/starforge/cmd/app"
	"github.com/aiide/starforge/cmd/configuration"
	"github.com/aiide/starforge/pkg/site"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("starforge", func() {
	var (
		destination string
		stdout      *bytes.Buffer
		args        []string
		err         error
	)

	BeforeEach(func() {
		destination = filepath.Join(os.TempDir(), "test"+uuid.New().String())
		stdout = &bytes.Buffer{}
		Expect(os.Setenv(configuration.StarforgeConfigEnv, "testdata/config.yaml")).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Unsetenv(configuration.StarforgeConfigEnv)).To(Succeed())
		Expect(os.RemoveAll(destination)).To(Succeed())
	})

	JustBeforeEach(func() {
		cmd := app.NewCommand(context.Background())
		cmd.SetArgs(args)
		cmd.SetOut(stdout)
		cmd.SetErr(&bytes.Buffer{})
		err = cmd.Execute()
	})

	When("building the Astro configuration", func() {
		BeforeEach(func() {
			args = []string{"-f", "testdata/site.yaml", "-d", destination}
		})
		It("writes astro.config.mjs", func() {
			Expect(err).NotTo(HaveOccurred())
			out, err := os.ReadFile(filepath.Join(destination, "astro.config.mjs"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(ContainSubstring("import starlight from '@astrojs/starlight';"))
			Expect(string(out)).To(ContainSubstring("title: 'AIIDE',"))
			Expect(string(out)).To(ContainSubstring("github: 'https://github.com/Anilturaga/aiide',"))
			Expect(string(out)).To(ContainSubstring("slug: 'tutorial/example',"))
			Expect(string(out)).To(ContainSubstring("autogenerate: { directory: 'reference' },"))
		})
	})

	When("building JSON into a nested output file", func() {
		BeforeEach(func() {
			args = []string{"-f", "testdata/site.yaml", "-d", destination, "--format", "json", "--output-file", "config/site.json"}
		})
		It("keeps the sidebar order", func() {
			Expect(err).NotTo(HaveOccurred())
			out, err := os.ReadFile(filepath.Join(destination, "config", "site.json"))
			Expect(err).NotTo(HaveOccurred())
			cfg, err := site.Parse(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Sidebar).To(HaveLen(3))
			Expect(cfg.Sidebar[0].Label).To(Equal("Introduction"))
			Expect(cfg.Sidebar[1].Label).To(Equal("Tutorial"))
			Expect(cfg.Sidebar[1].Items[0].Slug).To(Equal("tutorial/example"))
			Expect(cfg.Sidebar[2].Autogenerate.Directory).To(Equal("reference"))
		})
	})

	When("the format is taken from the environment", func() {
		BeforeEach(func() {
			Expect(os.Setenv("STARFORGE_FORMAT", "yaml")).To(Succeed())
			args = []string{"-f", "testdata/site.yaml", "-d", destination}
		})
		AfterEach(func() {
			Expect(os.Unsetenv("STARFORGE_FORMAT")).To(Succeed())
		})
		It("writes site.yaml", func() {
			Expect(err).NotTo(HaveOccurred())
			_, err := os.Stat(filepath.Join(destination, "site.yaml"))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	When("the manifest is taken from the environment", func() {
		BeforeEach(func() {
			Expect(os.Setenv("STARFORGE_MANIFEST", "testdata/site.yaml")).To(Succeed())
			args = []string{"-d", destination}
		})
		AfterEach(func() {
			Expect(os.Unsetenv("STARFORGE_MANIFEST")).To(Succeed())
		})
		It("writes astro.config.mjs", func() {
			Expect(err).NotTo(HaveOccurred())
			_, err := os.Stat(filepath.Join(destination, "astro.config.mjs"))
			Expect(err).NotTo(HaveOccurred())
		})
	})

	When("expanding autogenerated groups", func() {
		BeforeEach(func() {
			args = []string{"-f", "testdata/site.yaml", "-d", destination, "--content-dir", "testdata/docs", "--check-content", "--expand-autogenerate", "--format", "yaml"}
		})
		It("lists the pages of the directory", func() {
			Expect(err).NotTo(HaveOccurred())
			out, err := os.ReadFile(filepath.Join(destination, "site.yaml"))
			Expect(err).NotTo(HaveOccurred())
			cfg, err := site.Parse(out)
			Expect(err).NotTo(HaveOccurred())
			reference := cfg.Sidebar[2]
			Expect(reference.Autogenerate).To(BeNil())
			Expect(reference.Items).To(HaveLen(2))
			Expect(reference.Items[0].Label).To(Equal("Chat"))
			Expect(reference.Items[0].Slug).To(Equal("reference/chat"))
			Expect(reference.Items[1].Label).To(Equal("Tools"))
		})
	})

	When("a slug has no page", func() {
		BeforeEach(func() {
			args = []string{"-f", "testdata/missing_page.yaml", "-d", destination, "--content-dir", "testdata/docs", "--check-content"}
		})
		It("fails without writing", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Conceptual Guide > AIIDE Chat"))
			_, err := os.Stat(filepath.Join(destination, "astro.config.mjs"))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	When("running dry", func() {
		BeforeEach(func() {
			args = []string{"-f", "testdata/site.yaml", "-d", destination, "--dry-run", "--resolve"}
		})
		It("prints instead of writing", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(stdout.String()).To(ContainSubstring("- label: Introduction\n"))
			Expect(stdout.String()).To(ContainSubstring("astro.config.mjs ("))
			Expect(stdout.String()).To(ContainSubstring("label: 'Task Management Assistant',"))
			_, err := os.Stat(destination)
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	When("the manifest is missing", func() {
		BeforeEach(func() {
			args = []string{"-d", destination}
		})
		It("fails", func() {
			Expect(err).To(MatchError("manifest path is required"))
		})
	})

	When("the format is unknown", func() {
		BeforeEach(func() {
			args = []string{"-f", "testdata/site.yaml", "-d", destination, "--format", "toml"}
		})
		It("fails", func() {
			Expect(err).To(MatchError(ContainSubstring("unknown format 'toml'")))
		})
	})

	When("printing the version", func() {
		BeforeEach(func() {
			args = []string{"version"}
		})
		It("prints the version and platform", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(stdout.String()).To(HavePrefix("starforge binary was not built properly (go"))
			Expect(stdout.String()).To(HaveSuffix(runtime.GOOS + "/" + runtime.GOARCH + ")\n"))
		})
	})

	When("printing the short version", func() {
		BeforeEach(func() {
			args = []string{"version", "--short"}
		})
		It("prints the version only", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(stdout.String()).To(Equal("binary was not built properly\n"))
		})
	})

	When("generating completions", func() {
		BeforeEach(func() {
			args = []string{"completion", "bash"}
		})
		It("prints the script", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(stdout.String()).To(ContainSubstring("starforge"))
		})
	})
})
