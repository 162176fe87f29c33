// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/aiide/starforge/pkg/registry/repositoryhost"
	"k8s.io/klog/v2"
)

// Interface can register and return repository hosts for an url
type Interface interface {
	// Accept checks if any registered repository host can handle the link
	Accept(link string) bool
	// CheckRepository verifies that the repository a link points at exists
	CheckRepository(ctx context.Context, link string) (*repositoryhost.Repository, error)
	// LogRateLimits logs rate limit and remaining API calls for all repository hosts
	LogRateLimits(ctx context.Context)
}

type registry struct {
	repoHosts []repositoryhost.Interface
}

// NewRegistry creates Registry object, optionally loading it with repository hosts if provided
func NewRegistry(repoHosts ...repositoryhost.Interface) Interface {
	return &registry{repoHosts: repoHosts}
}

func (r *registry) Accept(link string) bool {
	_, err := r.acceptAnyRH(link)
	return err == nil
}

func (r *registry) CheckRepository(ctx context.Context, link string) (*repositoryhost.Repository, error) {
	rh, err := r.acceptAnyRH(link)
	if err != nil {
		return nil, err
	}
	return rh.CheckRepository(ctx, link)
}

func (r *registry) acceptAnyRH(uri string) (repositoryhost.Interface, error) {
	for _, h := range r.repoHosts {
		if h.Accept(uri) {
			return h, nil
		}
	}
	return nil, fmt.Errorf("no suitable repository host for %s", uri)
}

func (r *registry) LogRateLimits(ctx context.Context) {
	for _, repoHost := range r.repoHosts {
		l, rr, rt, err := repoHost.GetRateLimit(ctx)
		if err != nil {
			klog.Warningf("Error getting RateLimit for %s: %v\n", repoHost.Name(), err)
		} else if l > 0 && rr > 0 {
			klog.Infof("%s RateLimit: %d requests per hour, Remaining: %d, Reset after: %s\n", repoHost.Name(), l, rr, time.Until(rt).Round(time.Second))
		}
	}
}
