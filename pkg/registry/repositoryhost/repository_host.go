// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package repositoryhost

import (
	"context"
	"fmt"
	"time"
)

// ErrResourceNotFound indicated that a resource was not found
type ErrResourceNotFound string

// Error returns "resource r not found" error
func (e ErrResourceNotFound) Error() string {
	return fmt.Sprintf("resource %q not found", string(e))
}

// Interface does repository specific operations on the repositories
// of the hosts it accepts
type Interface interface {
	// Accept checks if the repository host can handle the given link
	Accept(link string) bool
	// CheckRepository verifies that the repository a link points at exists
	CheckRepository(ctx context.Context, link string) (*Repository, error)
	// Name of repository host
	Name() string
	// GetRateLimit returns rate limit and remaining API calls for the repository host backend (e.g. GitHub RateLimit)
	// returns negative values if RateLimit is not applicable
	GetRateLimit(ctx context.Context) (int, int, time.Time, error)
}

// InitOptions options for the repository hosts
type InitOptions struct {
	CacheHomeDir string            `mapstructure:"cache-dir"`
	Credentials  map[string]string `mapstructure:"github-oauth-token-map"`
}

// Repository holds the repository data reported by a repository host
type Repository struct {
	URL           string
	DefaultBranch string
	Stars         int
	Archived      bool
}
