// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site_test

import (
	"os"

	"github.com/aiide/starforge/pkg/site"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Site configuration codec", func() {
	var (
		data []byte
		cfg  *site.SiteConfig
		err  error
	)

	JustBeforeEach(func() {
		cfg, err = site.Parse(data)
	})

	When("parsing the documentation site configuration", func() {
		BeforeEach(func() {
			data, err = os.ReadFile("testdata/aiide.yaml")
			Expect(err).NotTo(HaveOccurred())
		})
		It("keeps the sidebar structure", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Title).To(Equal("AIIDE"))
			github, ok := cfg.Social.Get("github")
			Expect(ok).To(BeTrue())
			Expect(github).To(Equal("https://github.com/Anilturaga/aiide"))

			Expect(cfg.Sidebar).To(HaveLen(2))
			Expect(cfg.Sidebar[0].Kind()).To(Equal(site.TypeLink))
			Expect(cfg.Sidebar[0].Label).To(Equal("Introduction"))
			Expect(cfg.Sidebar[0].Slug).To(Equal("introduction/index"))

			tutorial := cfg.Sidebar[1]
			Expect(tutorial.Kind()).To(Equal(site.TypeGroup))
			Expect(tutorial.Label).To(Equal("Tutorial"))
			Expect(tutorial.Items).To(HaveLen(1))
			Expect(tutorial.Items[0].Label).To(Equal("Task Management Assistant"))
			Expect(tutorial.Items[0].Slug).To(Equal("tutorial/example"))
		})
		It("is valid", func() {
			Expect(site.Validate(cfg)).To(Succeed())
		})
	})

	When("parsing json", func() {
		BeforeEach(func() {
			data, err = os.ReadFile("testdata/full.json")
			Expect(err).NotTo(HaveOccurred())
		})
		It("keeps social declaration order", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Social).To(Equal(site.Social{
				{Platform: "github", URL: "https://github.com/Anilturaga/aiide"},
				{Platform: "discord", URL: "https://discord.gg/aiide"},
			}))
		})
		It("decodes every entry variant", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Sidebar).To(HaveLen(4))
			Expect(cfg.Sidebar[1].Kind()).To(Equal(site.TypeGroup))
			Expect(cfg.Sidebar[1].Items).NotTo(BeNil())
			Expect(cfg.Sidebar[1].Items).To(BeEmpty())
			Expect(cfg.Sidebar[1].Collapsed).To(BeTrue())
			Expect(cfg.Sidebar[2].Autogenerate).To(Equal(&site.Autogenerate{Directory: "reference"}))
			Expect(cfg.Sidebar[3].Kind()).To(Equal(site.TypeLink))
			Expect(cfg.Sidebar[3].Target()).To(Equal("https://pypi.org/project/aiide/"))
		})
	})

	When("an unknown key is used", func() {
		BeforeEach(func() {
			data = []byte("title: AIIDE\nsidebar:\n  - label: Tutorial\n    itmes: []\n")
		})
		It("errors", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("itmes"))
		})
	})

	When("parsing a yaml flow mapping", func() {
		BeforeEach(func() {
			data = []byte("{title: AIIDE, sidebar: [{label: Introduction, slug: introduction/index}]}")
		})
		It("falls back to yaml", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Title).To(Equal("AIIDE"))
			Expect(cfg.Sidebar).To(HaveLen(1))
			Expect(cfg.Sidebar[0].Slug).To(Equal("introduction/index"))
		})
	})

	When("json has an unknown key", func() {
		BeforeEach(func() {
			data = []byte(`{"title": "AIIDE", "sidbar": []}`)
		})
		It("errors", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("json"))
			Expect(err.Error()).To(ContainSubstring("sidbar"))
		})
	})

	When("the content is empty", func() {
		BeforeEach(func() {
			data = []byte("  \n")
		})
		It("errors", func() {
			Expect(err).To(HaveOccurred())
			Expect(cfg).To(BeNil())
		})
	})

	When("social is not a mapping", func() {
		BeforeEach(func() {
			data = []byte("title: AIIDE\nsocial:\n  - https://github.com/Anilturaga/aiide\n")
		})
		It("errors", func() {
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("mapping"))
		})
	})

	DescribeTable("round trips in order",
		func(file string, format string) {
			content, err := os.ReadFile(file)
			Expect(err).NotTo(HaveOccurred())
			original, err := site.Parse(content)
			Expect(err).NotTo(HaveOccurred())

			out, err := site.Marshal(original, format)
			Expect(err).NotTo(HaveOccurred())
			reparsed, err := site.Parse(out)
			Expect(err).NotTo(HaveOccurred())
			Expect(reparsed).To(Equal(original))

			again, err := site.Marshal(reparsed, format)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(out))
		},
		Entry("yaml to yaml", "testdata/aiide.yaml", site.FormatYAML),
		Entry("yaml to json", "testdata/aiide.yaml", site.FormatJSON),
		Entry("json to yaml", "testdata/full.json", site.FormatYAML),
		Entry("json to json", "testdata/full.json", site.FormatJSON),
	)

	It("serializes empty groups explicitly", func() {
		cfg := &site.SiteConfig{Title: "AIIDE", Sidebar: []*site.Entry{site.NewGroup("How-To Guides")}}
		out, err := site.Marshal(cfg, site.FormatYAML)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(ContainSubstring("label: How-To Guides"))
		Expect(string(out)).To(ContainSubstring("items: []"))

		out, err = site.Marshal(cfg, site.FormatJSON)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(ContainSubstring(`"items": []`))
	})

	It("rejects unknown formats", func() {
		_, err := site.Marshal(&site.SiteConfig{Title: "AIIDE"}, "toml")
		Expect(err).To(MatchError(ContainSubstring("unsupported format")))
	})
})
