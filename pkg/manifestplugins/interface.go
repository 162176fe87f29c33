// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package manifestplugins

import "github.com/aiide/starforge/pkg/manifest"

// Interface should be implemented by plugins
type Interface interface {
	// PluginEntryTransformations is the list of entry transformations
	// the plugin would like to apply when resolving the sidebar
	PluginEntryTransformations() []manifest.EntryTransformation
}
