// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package repositoryhost

import (
	"fmt"
	"net/url"
	"strings"
)

// URL represents a repository url
type URL struct {
	host  string
	owner string
	repo  string
}

// NewRepositoryURL parses links of the form https://<host>/<owner>/<repo>[/...]
func NewRepositoryURL(link string) (*URL, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, err
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, fmt.Errorf("%s is not an absolute http(s) URL", link)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return nil, fmt.Errorf("%s is not a repository URL", link)
	}
	host := strings.ToLower(u.Host)
	if host == "www.github.com" {
		host = "github.com"
	}
	return &URL{
		host:  host,
		owner: segments[0],
		repo:  strings.TrimSuffix(segments[1], ".git"),
	}, nil
}

// GetHost returns the repository host
func (r URL) GetHost() string {
	return r.host
}

// GetOwner returns the repository owner
func (r URL) GetOwner() string {
	return r.owner
}

// GetRepo returns the repository name
func (r URL) GetRepo() string {
	return r.repo
}

// String returns the repository url
func (r URL) String() string {
	return fmt.Sprintf("https://%s/%s/%s", r.host, r.owner, r.repo)
}
