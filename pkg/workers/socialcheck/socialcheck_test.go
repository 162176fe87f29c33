// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package socialcheck_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aiide/starforge/pkg/registry"
	"github.com/aiide/starforge/pkg/registry/repositoryhost"
	"github.com/aiide/starforge/pkg/site"
	"github.com/aiide/starforge/pkg/workers/socialcheck"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type fakeRegistry struct {
	mux     sync.Mutex
	checked []string
}

func (f *fakeRegistry) Accept(link string) bool {
	return strings.HasPrefix(link, "https://github.com/")
}

func (f *fakeRegistry) CheckRepository(_ context.Context, link string) (*repositoryhost.Repository, error) {
	f.mux.Lock()
	f.checked = append(f.checked, link)
	f.mux.Unlock()
	if strings.HasSuffix(link, "/missing") {
		return nil, repositoryhost.ErrResourceNotFound(link)
	}
	return &repositoryhost.Repository{URL: link, DefaultBranch: "main"}, nil
}

func (f *fakeRegistry) LogRateLimits(_ context.Context) {}

var _ registry.Interface = &fakeRegistry{}

var _ = Describe("SocialCheck", func() {
	var (
		r      *fakeRegistry
		social site.Social
		ctx    context.Context
	)
	BeforeEach(func() {
		r = &fakeRegistry{}
		ctx = context.Background()
		social = site.Social{
			{Platform: "github", URL: "https://github.com/Anilturaga/aiide"},
			{Platform: "discord", URL: "https://discord.gg/aiide"},
		}
	})

	Describe("NewWorker", func() {
		It("fails without a registry", func() {
			_, err := socialcheck.NewWorker(nil)
			Expect(err).To(MatchError(ContainSubstring("registry is nil")))
		})
	})

	Describe("Check", func() {
		var worker *socialcheck.Worker
		BeforeEach(func() {
			var err error
			worker, err = socialcheck.NewWorker(r)
			Expect(err).NotTo(HaveOccurred())
		})
		It("skips links that are not repository links", func() {
			Expect(worker.Check(ctx, social[1])).To(Succeed())
			Expect(r.checked).To(BeEmpty())
		})
		It("checks repository links", func() {
			Expect(worker.Check(ctx, social[0])).To(Succeed())
			Expect(r.checked).To(Equal([]string{"https://github.com/Anilturaga/aiide"}))
		})
		It("reports missing repositories", func() {
			err := worker.Check(ctx, site.SocialLink{Platform: "github", URL: "https://github.com/Anilturaga/missing"})
			Expect(err).To(MatchError(ContainSubstring("social link github")))
			var notFound repositoryhost.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})

	Describe("CheckAll", func() {
		It("checks every repository link", func() {
			social = append(social, site.SocialLink{Platform: "gitlab", URL: "https://github.com/Anilturaga/aiide-docs"})
			Expect(socialcheck.CheckAll(ctx, social, 2, r)).To(Succeed())
			Expect(r.checked).To(ConsistOf("https://github.com/Anilturaga/aiide", "https://github.com/Anilturaga/aiide-docs"))
		})
		It("collects the errors of all links", func() {
			social = site.Social{
				{Platform: "github", URL: "https://github.com/Anilturaga/missing"},
				{Platform: "mastodon", URL: "https://github.com/someone/missing"},
			}
			err := socialcheck.CheckAll(ctx, social, 2, r)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("social link github"))
			Expect(err.Error()).To(ContainSubstring("social link mastodon"))
		})
		It("reports an interrupted check", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			social = site.Social{{Platform: "github", URL: "https://github.com/Anilturaga/missing"}}
			for i := 0; i < 50; i++ {
				err := socialcheck.CheckAll(cancelled, social, 2, r)
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, context.Canceled)).To(BeTrue())
				Expect(err.Error()).To(ContainSubstring("checking social links interrupted"))
			}
		})
		It("fails for an invalid worker count", func() {
			Expect(socialcheck.CheckAll(ctx, social, 0, r)).To(MatchError(ContainSubstring("invalid workers size")))
		})
	})
})
