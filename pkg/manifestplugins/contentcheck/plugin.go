// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package contentcheck

import (
	"errors"
	"fmt"

	"github.com/aiide/starforge/pkg/content"
	"github.com/aiide/starforge/pkg/manifest"
	"github.com/aiide/starforge/pkg/site"
)

// ContentCheck is the object representing the content checking plugin
type ContentCheck struct{}

// PluginEntryTransformations returns the entry transformations for the content checking plugin
func (cc *ContentCheck) PluginEntryTransformations() []manifest.EntryTransformation {
	return []manifest.EntryTransformation{checkContent}
}

func checkContent(entry *site.Entry, _ *site.Entry, c content.Interface) (bool, error) {
	if entry.Slug == "" && entry.Autogenerate == nil {
		return false, nil
	}
	if c == nil {
		return false, errors.New("no content tree to check against")
	}
	if entry.Slug != "" {
		if _, err := c.Resolve(entry.Slug); err != nil {
			return false, fmt.Errorf("entry %s: %w", entry.Path(), err)
		}
		return false, nil
	}
	if !c.IsDir(entry.Autogenerate.Directory) {
		return false, fmt.Errorf("entry %s: autogenerate directory %s doesn't exist", entry.Path(), entry.Autogenerate.Directory)
	}
	return false, nil
}
