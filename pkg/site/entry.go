// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// NewLink creates a link entry for a content slug
func NewLink(label, slug string) *Entry {
	return &Entry{Label: label, LinkType: LinkType{Slug: slug}, Type: TypeLink}
}

// NewGroup creates a group entry with the given children
func NewGroup(label string, items ...*Entry) *Entry {
	if items == nil {
		items = []*Entry{}
	}
	return &Entry{Label: label, GroupType: GroupType{Items: items}, Type: TypeGroup}
}

// Variants returns the variant keys set on the entry. A well-formed
// entry has exactly one.
func (e *Entry) Variants() []string {
	variants := []string{}
	if e.Slug != "" {
		variants = append(variants, "slug")
	}
	if e.Link != "" {
		variants = append(variants, "link")
	}
	if e.Items != nil {
		variants = append(variants, "items")
	}
	if e.Autogenerate != nil {
		variants = append(variants, "autogenerate")
	}
	return variants
}

// Kind returns TypeLink or TypeGroup, or "" when the entry is malformed
func (e *Entry) Kind() string {
	variants := e.Variants()
	if len(variants) != 1 {
		return ""
	}
	switch variants[0] {
	case "slug", "link":
		return TypeLink
	default:
		return TypeGroup
	}
}

// IsGroup reports whether the entry is a group
func (e *Entry) IsGroup() bool {
	return e.Kind() == TypeGroup
}

// Target returns the slug or link of a link entry
func (e *Entry) Target() string {
	if e.Slug != "" {
		return e.Slug
	}
	return e.Link
}

// Parent is the enclosing group, nil for top-level entries
func (e *Entry) Parent() *Entry {
	return e.parent
}

// SetParent sets the enclosing group
func (e *Entry) SetParent(parent *Entry) {
	e.parent = parent
}

// Path returns the labels from the top-level entry down to this one
func (e *Entry) Path() string {
	labels := []string{}
	for n := e; n != nil; n = n.parent {
		labels = append([]string{n.Label}, labels...)
	}
	return strings.Join(labels, " > ")
}

func (e *Entry) String() string {
	entry, err := yaml.Marshal(e)
	if err != nil {
		return ""
	}
	return string(entry)
}

// entryWire fixes the serialized key order and keeps intentionally
// empty item lists
type entryWire struct {
	Label        string        `yaml:"label" json:"label"`
	Slug         string        `yaml:"slug,omitempty" json:"slug,omitempty"`
	Link         string        `yaml:"link,omitempty" json:"link,omitempty"`
	Items        *[]*Entry     `yaml:"items,omitempty" json:"items,omitempty"`
	Autogenerate *Autogenerate `yaml:"autogenerate,omitempty" json:"autogenerate,omitempty"`
	Collapsed    bool          `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
}

func (e *Entry) wire() entryWire {
	w := entryWire{
		Label:        e.Label,
		Slug:         e.Slug,
		Link:         e.Link,
		Autogenerate: e.Autogenerate,
		Collapsed:    e.Collapsed,
	}
	if e.Items != nil {
		items := e.Items
		w.Items = &items
	}
	return w
}

// MarshalYAML implements yaml.Marshaler
func (e *Entry) MarshalYAML() (interface{}, error) {
	return e.wire(), nil
}

// MarshalJSON implements json.Marshaler
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.wire())
}

// Walk calls fn for every entry depth-first, in sidebar order
func Walk(entries []*Entry, fn func(entry *Entry, parent *Entry) error) error {
	return walk(entries, nil, fn)
}

func walk(entries []*Entry, parent *Entry, fn func(entry *Entry, parent *Entry) error) error {
	for _, entry := range entries {
		if err := fn(entry, parent); err != nil {
			return err
		}
		if err := walk(entry.Items, entry, fn); err != nil {
			return err
		}
	}
	return nil
}

// Links returns all link entries in sidebar order
func Links(entries []*Entry) []*Entry {
	links := []*Entry{}
	_ = Walk(entries, func(entry *Entry, _ *Entry) error {
		if entry.Kind() == TypeLink {
			links = append(links, entry)
		}
		return nil
	})
	return links
}
