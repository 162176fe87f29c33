// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aiide/starforge/pkg/content"
	"github.com/aiide/starforge/pkg/internal/must"
	"github.com/aiide/starforge/pkg/site"
	"k8s.io/klog/v2"
)

// EntryTransformation is the way plugins can contribute to the sidebar processing.
// Returning runTreeChangeProcedure signals that entries were added to the tree.
type EntryTransformation func(entry *site.Entry, parent *site.Entry, c content.Interface) (runTreeChangeProcedure bool, err error)

func processSidebar(sidebar []*site.Entry, c content.Interface, functions ...EntryTransformation) error {
	for i := range functions {
		runTreeChangeProcedure, err := processTransformations(functions[i], sidebar, nil, c)
		if err != nil {
			return err
		}
		if runTreeChangeProcedure {
			runTCP, err := processTransformations(decideEntryType, sidebar, nil, c)
			if err != nil {
				return err
			}
			must.BeFalse(runTCP)
			runTCP, err = processTransformations(normalizeSlug, sidebar, nil, c)
			if err != nil {
				return err
			}
			must.BeFalse(runTCP)
			runTCP, err = processTransformations(setParent, sidebar, nil, c)
			if err != nil {
				return err
			}
			must.BeFalse(runTCP)
		}
	}
	return nil
}

// processTransformations applies f to the entries and their descendants.
// Failures of sibling entries are joined so that all of them get reported.
func processTransformations(f EntryTransformation, entries []*site.Entry, parent *site.Entry, c content.Interface) (bool, error) {
	var (
		changed bool
		errs    error
	)
	for _, entry := range entries {
		entryChanged, err := processTransformation(f, entry, parent, c)
		changed = changed || entryChanged
		errs = errors.Join(errs, err)
	}
	return changed, errs
}

func processTransformation(f EntryTransformation, entry *site.Entry, parent *site.Entry, c content.Interface) (bool, error) {
	runTreeChangeProcedure, err := f(entry, parent, c)
	if err != nil {
		return runTreeChangeProcedure, err
	}
	childRunTreeChangeProcedure, err := processTransformations(f, entry.Items, entry, c)
	if err != nil {
		return runTreeChangeProcedure, fmt.Errorf("group %q -> %w", entry.Label, err)
	}
	return runTreeChangeProcedure || childRunTreeChangeProcedure, nil
}

func decideEntryType(entry *site.Entry, _ *site.Entry, _ content.Interface) (bool, error) {
	entry.Type = ""
	variants := entry.Variants()
	switch len(variants) {
	case 0:
		return false, fmt.Errorf("there is an entry \n\n%s\nof no type", entry)
	case 1:
		entry.Type = entry.Kind()
		return false, nil
	default:
		return false, fmt.Errorf("there is an entry \n\n%s\ntrying to be %s", entry, strings.Join(variants, ","))
	}
}

func normalizeSlug(entry *site.Entry, _ *site.Entry, _ content.Interface) (bool, error) {
	if entry.Slug != "" {
		entry.Slug = site.NormalizeSlug(entry.Slug)
	}
	if entry.Autogenerate != nil {
		entry.Autogenerate.Directory = site.NormalizeSlug(entry.Autogenerate.Directory)
	}
	return false, nil
}

func setParent(entry *site.Entry, parent *site.Entry, _ content.Interface) (bool, error) {
	entry.SetParent(parent)
	return false, nil
}

// Resolve parses, validates and processes a site manifest. The content tree may be
// nil when none of the additional transformations needs it.
func Resolve(data []byte, c content.Interface, additionalTransformations ...EntryTransformation) (*site.SiteConfig, error) {
	cfg, err := site.Parse(data)
	if err != nil {
		return nil, err
	}
	if err = site.Validate(cfg); err != nil {
		return nil, err
	}
	err = processSidebar(cfg.Sidebar, c,
		decideEntryType,
		normalizeSlug,
		setParent,
	)
	if err != nil {
		return nil, err
	}
	if err = processSidebar(cfg.Sidebar, c, additionalTransformations...); err != nil {
		return nil, err
	}
	klog.V(4).Infof("resolved sidebar with %d top-level entries and %d links\n", len(cfg.Sidebar), len(site.Links(cfg.Sidebar)))
	return cfg, nil
}

// ResolveManifest reads the site manifest from a file and resolves it
func ResolveManifest(manifestPath string, c content.Interface, additionalTransformations ...EntryTransformation) (*site.SiteConfig, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("can't read manifest %s: %w", manifestPath, err)
	}
	cfg, err := Resolve(data, c, additionalTransformations...)
	if err != nil {
		return nil, fmt.Errorf("manifest %s -> %w", manifestPath, err)
	}
	return cfg, nil
}
