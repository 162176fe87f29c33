// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package manifest_test

import (
	"errors"
	"testing/fstest"

	"github.com/aiide/starforge/pkg/content"
	"github.com/aiide/starforge/pkg/manifest"
	"github.com/aiide/starforge/pkg/site"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Manifest", func() {
	var c content.Interface

	BeforeEach(func() {
		c = content.New(fstest.MapFS{
			"introduction/index.md":   {Data: []byte("---\ntitle: Introduction\n---\n")},
			"tutorial/example.md":     {Data: []byte("---\ntitle: Example\n---\n")},
			"reference/chat.md":       {Data: []byte("---\ntitle: Chat\n---\n")},
			"reference/tools/exec.md": {Data: []byte("---\ntitle: Exec\n---\n")},
		})
	})

	It("resolves a sidebar keeping its order", func() {
		cfg, err := manifest.ResolveManifest("testdata/tutorial.yaml", c)
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Title).To(Equal("AIIDE"))
		Expect(cfg.Sidebar).To(HaveLen(2))

		intro, tutorial := cfg.Sidebar[0], cfg.Sidebar[1]
		Expect(intro.Label).To(Equal("Introduction"))
		Expect(intro.Type).To(Equal(site.TypeLink))
		Expect(intro.Slug).To(Equal("introduction/index"))
		Expect(intro.Parent()).To(BeNil())

		Expect(tutorial.Label).To(Equal("Tutorial"))
		Expect(tutorial.Type).To(Equal(site.TypeGroup))
		Expect(tutorial.Items).To(HaveLen(1))
		example := tutorial.Items[0]
		Expect(example.Slug).To(Equal("tutorial/example"))
		Expect(example.Parent()).To(BeIdenticalTo(tutorial))
		Expect(example.Path()).To(Equal("Tutorial > Example"))
	})

	It("reports invalid manifests with the manifest path", func() {
		_, err := manifest.ResolveManifest("testdata/invalid.yaml", c)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("testdata/invalid.yaml"))
		Expect(err.Error()).To(ContainSubstring("can't be slug and items at the same time"))
	})

	It("fails for missing manifests", func() {
		_, err := manifest.ResolveManifest("testdata/missing.yaml", c)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("can't read manifest"))
	})

	It("resolves JSON manifests", func() {
		cfg, err := manifest.Resolve([]byte(`{"title":"AIIDE","sidebar":[{"label":"Guides","items":[]}]}`), nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Sidebar[0].Type).To(Equal(site.TypeGroup))
		Expect(cfg.Sidebar[0].Items).ToNot(BeNil())
		Expect(cfg.Sidebar[0].Items).To(BeEmpty())
	})

	It("runs additional transformations in order", func() {
		visited := []string{}
		record := func(entry *site.Entry, parent *site.Entry, _ content.Interface) (bool, error) {
			visited = append(visited, entry.Path())
			return false, nil
		}
		_, err := manifest.ResolveManifest("testdata/tutorial.yaml", c, record)
		Expect(err).ToNot(HaveOccurred())
		Expect(visited).To(Equal([]string{"Introduction", "Tutorial", "Tutorial > Example"}))
	})

	It("sets up entries added by transformations", func() {
		expand := func(entry *site.Entry, _ *site.Entry, _ content.Interface) (bool, error) {
			if entry.Autogenerate == nil {
				return false, nil
			}
			entry.Items = []*site.Entry{{Label: "Chat", LinkType: site.LinkType{Slug: "/reference/chat"}}}
			entry.Autogenerate = nil
			return true, nil
		}
		cfg, err := manifest.ResolveManifest("testdata/autogenerate.yaml", c, expand)
		Expect(err).ToNot(HaveOccurred())
		reference := cfg.Sidebar[1]
		Expect(reference.Type).To(Equal(site.TypeGroup))
		Expect(reference.Items).To(HaveLen(1))
		chat := reference.Items[0]
		Expect(chat.Type).To(Equal(site.TypeLink))
		Expect(chat.Slug).To(Equal("reference/chat"))
		Expect(chat.Parent()).To(BeIdenticalTo(reference))
	})

	It("collects errors of sibling entries", func() {
		errFailed := errors.New("failed")
		fail := func(entry *site.Entry, _ *site.Entry, _ content.Interface) (bool, error) {
			if entry.Type == site.TypeLink {
				return false, errFailed
			}
			return false, nil
		}
		_, err := manifest.ResolveManifest("testdata/tutorial.yaml", c, fail)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, errFailed)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(`group "Tutorial" -> failed`))
	})
})
