// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package repositoryhost

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/google/go-github/v43/github"
	"k8s.io/klog/v2"
)

type ghc struct {
	hostName      string
	rateLimit     RateLimitSource
	repositories  Repositories
	acceptedHosts []string
}

// RateLimitSource is an interface needed for faking
type RateLimitSource interface {
	RateLimits(ctx context.Context) (*github.RateLimits, *github.Response, error)
}

// Repositories is an interface needed for faking
type Repositories interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
}

// NewGHC creates new GitHub repository host
func NewGHC(hostName string, rateLimit RateLimitSource, repositories Repositories, acceptedHosts []string) Interface {
	return &ghc{
		hostName:      hostName,
		rateLimit:     rateLimit,
		repositories:  repositories,
		acceptedHosts: acceptedHosts,
	}
}

// NewGitHub creates a GitHub repository host backed by a go-github client
func NewGitHub(host string, client *github.Client) Interface {
	return NewGHC(host, client, client.Repositories, []string{host, "www." + host})
}

func (p *ghc) CheckRepository(ctx context.Context, link string) (*Repository, error) {
	r, err := NewRepositoryURL(link)
	if err != nil {
		return nil, err
	}
	repo, resp, err := p.repositories.Get(ctx, r.GetOwner(), r.GetRepo())
	if err != nil {
		if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrResourceNotFound(r.String())
		}
		return nil, fmt.Errorf("checking repository %s failed: %w", r.String(), err)
	}
	info := &Repository{
		URL:           r.String(),
		DefaultBranch: repo.GetDefaultBranch(),
		Stars:         repo.GetStargazersCount(),
		Archived:      repo.GetArchived(),
	}
	if info.Archived {
		klog.Warningf("repository %s is archived\n", info.URL)
	}
	klog.V(2).Infof("repository %s: default branch %s, %d stars\n", info.URL, info.DefaultBranch, info.Stars)
	return info, nil
}

func (p *ghc) Name() string {
	return p.hostName
}

func (p *ghc) Accept(link string) bool {
	r, err := NewRepositoryURL(link)
	if err != nil {
		return false
	}
	return slices.Contains(p.acceptedHosts, r.GetHost())
}

func (p *ghc) GetRateLimit(ctx context.Context) (int, int, time.Time, error) {
	r, _, err := p.rateLimit.RateLimits(ctx)
	if err != nil {
		return -1, -1, time.Now(), err
	}
	return r.Core.Limit, r.Core.Remaining, r.Core.Reset.Time, nil
}
