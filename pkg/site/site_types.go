// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

const (
	// TypeLink marks an entry pointing at a single page or URL
	TypeLink = "link"
	// TypeGroup marks an entry holding an ordered list of child entries
	TypeGroup = "group"
)

// SiteConfig is the documentation site configuration handed to the
// site generator theme integration
type SiteConfig struct {
	// Title of the documentation site
	Title string `yaml:"title" json:"title"`
	// Social maps platform names (e.g. github) to URLs, in declaration order
	Social Social `yaml:"social,omitempty" json:"social,omitempty"`
	// Sidebar is the top-level navigation. Order is significant.
	Sidebar []*Entry `yaml:"sidebar,omitempty" json:"sidebar,omitempty"`
}

// LinkType represents a sidebar link
type LinkType struct {
	// Slug references a page in the documentation content tree
	Slug string `yaml:"slug,omitempty" json:"slug,omitempty"`
	// Link is an absolute or root-relative URL. Alternative to Slug.
	Link string `yaml:"link,omitempty" json:"link,omitempty"`
}

// GroupType represents a sidebar group
type GroupType struct {
	// Items are the ordered child entries of the group. An empty, non-nil
	// list is an intentionally empty group.
	Items []*Entry `yaml:"items,omitempty" json:"items,omitempty"`
	// Autogenerate fills the group from a content directory. Alternative to Items.
	Autogenerate *Autogenerate `yaml:"autogenerate,omitempty" json:"autogenerate,omitempty"`
	// Collapsed renders the group collapsed by default
	Collapsed bool `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
}

// Autogenerate describes a group generated from the content tree
type Autogenerate struct {
	// Directory relative to the content root
	Directory string `yaml:"directory" json:"directory"`
	// Collapsed applies to the generated sub-groups
	Collapsed bool `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
}

// Entry is a sidebar navigation entry. It is either a link
// (label + slug or link) or a group (label + items or autogenerate).
type Entry struct {
	// Label is the human-readable text shown in the sidebar
	Label string `yaml:"label" json:"label"`

	LinkType `yaml:",inline"`

	GroupType `yaml:",inline"`

	// Type of entry, computed on resolution
	Type string `yaml:"-" json:"-"`
	// Parent group of entry
	parent *Entry
}
