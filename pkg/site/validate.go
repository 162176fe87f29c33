// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
	"k8s.io/klog/v2"
)

// Validate performs validation of the site configuration and
// returns all violations found
func Validate(cfg *SiteConfig) error {
	if cfg == nil {
		return errors.New("site configuration is nil")
	}
	var errs *multierror.Error
	if strings.TrimSpace(cfg.Title) == "" {
		errs = multierror.Append(errs, errors.New("title must not be empty"))
	}
	for _, link := range cfg.Social {
		if strings.TrimSpace(link.Platform) == "" {
			errs = multierror.Append(errs, fmt.Errorf("social link %s has an empty platform name", link.URL))
			continue
		}
		if err := validateAbsoluteURL(link.URL); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("social link %s: %w", link.Platform, err))
		}
	}
	slugs := map[string]string{}
	for i, entry := range cfg.Sidebar {
		errs = validateEntry(entry, fmt.Sprintf("sidebar[%d]", i), slugs, errs)
	}
	return errs.ErrorOrNil()
}

func validateEntry(entry *Entry, location string, slugs map[string]string, errs *multierror.Error) *multierror.Error {
	if entry == nil {
		return multierror.Append(errs, fmt.Errorf("%s: entry is empty", location))
	}
	if strings.TrimSpace(entry.Label) == "" {
		errs = multierror.Append(errs, fmt.Errorf("%s: label must not be empty", location))
	} else {
		location = fmt.Sprintf("%s %q", location, entry.Label)
	}
	variants := entry.Variants()
	switch len(variants) {
	case 0:
		return multierror.Append(errs, fmt.Errorf("%s: entry has none of slug, link, items or autogenerate", location))
	case 1:
	default:
		return multierror.Append(errs, fmt.Errorf("%s: entry can't be %s at the same time", location, strings.Join(variants, " and ")))
	}
	if entry.Collapsed && (entry.Slug != "" || entry.Link != "") {
		errs = multierror.Append(errs, fmt.Errorf("%s: collapsed is only allowed for groups", location))
	}
	switch {
	case entry.Slug != "":
		if err := ValidateSlug(entry.Slug); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", location, err))
		}
		slug := NormalizeSlug(entry.Slug)
		if previous, ok := slugs[slug]; ok {
			klog.Warningf("%s: slug %s is already used by %s\n", location, slug, previous)
		} else {
			slugs[slug] = location
		}
	case entry.Link != "":
		if err := validateLink(entry.Link); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", location, err))
		}
	case entry.Autogenerate != nil:
		if strings.Trim(entry.Autogenerate.Directory, "/ ") == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s: autogenerate directory must not be empty", location))
		} else if err := ValidateSlug(entry.Autogenerate.Directory); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: autogenerate directory: %w", location, err))
		}
	default:
		if len(entry.Items) == 0 {
			klog.Warningf("%s: group has no items\n", location)
		}
		for i, child := range entry.Items {
			errs = validateEntry(child, fmt.Sprintf("%s.items[%d]", location, i), slugs, errs)
		}
	}
	return errs
}

// NormalizeSlug trims surrounding slashes and whitespace from a slug
func NormalizeSlug(slug string) string {
	return strings.Trim(strings.TrimSpace(slug), "/")
}

// ValidateSlug checks that a slug is a relative content path
func ValidateSlug(slug string) error {
	normalized := NormalizeSlug(slug)
	if normalized == "" {
		return errors.New("slug must not be empty")
	}
	if strings.Contains(normalized, "://") {
		return fmt.Errorf("slug %s is a URL, use link instead", slug)
	}
	for _, segment := range strings.Split(normalized, "/") {
		switch segment {
		case "":
			return fmt.Errorf("slug %s has an empty path segment", slug)
		case ".", "..":
			return fmt.Errorf("slug %s must not contain relative path segments", slug)
		}
	}
	return nil
}

func validateLink(link string) error {
	if strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//") {
		return nil
	}
	return validateAbsoluteURL(link)
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %s: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s is not an absolute http(s) URL", raw)
	}
	return nil
}
