// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package autogenerate

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aiide/starforge/pkg/content"
	"github.com/aiide/starforge/pkg/manifest"
	"github.com/aiide/starforge/pkg/site"
	"k8s.io/klog/v2"
)

// Autogenerate is the object representing the plugin that expands
// autogenerated groups into explicit items
type Autogenerate struct{}

// PluginEntryTransformations returns the entry transformations for the autogenerate plugin
func (a *Autogenerate) PluginEntryTransformations() []manifest.EntryTransformation {
	return []manifest.EntryTransformation{expandAutogenerate}
}

func expandAutogenerate(entry *site.Entry, _ *site.Entry, c content.Interface) (bool, error) {
	if entry.Autogenerate == nil {
		return false, nil
	}
	if c == nil {
		return false, errors.New("no content tree to generate groups from")
	}
	items, err := Generate(c, entry.Autogenerate.Directory, entry.Autogenerate.Collapsed)
	if err != nil {
		return false, fmt.Errorf("entry %s: %w", entry.Path(), err)
	}
	if len(items) == 0 {
		klog.Warningf("entry %s: autogenerate directory %s has no visible pages\n", entry.Path(), entry.Autogenerate.Directory)
	}
	entry.Items = items
	entry.Autogenerate = nil
	return true, nil
}

// Generate builds sidebar entries from the pages beneath a content directory.
// Subdirectories become groups. Draft and hidden pages are skipped. Siblings are
// sorted by sidebar.order, entries without order last, and then by name.
func Generate(c content.Interface, directory string, collapsed bool) ([]*site.Entry, error) {
	directory = site.NormalizeSlug(directory)
	if directory == "" {
		directory = "."
	}
	files, err := c.Tree(directory)
	if err != nil {
		return nil, err
	}
	root := newDirNode()
	for _, file := range files {
		page, err := c.Page(path.Join(directory, file))
		if err != nil {
			return nil, err
		}
		if !page.Visible() {
			klog.V(6).Infof("skipping page %s\n", page.Path)
			continue
		}
		root.add(strings.Split(file, "/"), page)
	}
	return root.entries(collapsed), nil
}

type dirNode struct {
	dirs  map[string]*dirNode
	pages []*content.Page
}

func newDirNode() *dirNode {
	return &dirNode{dirs: map[string]*dirNode{}}
}

func (d *dirNode) add(segments []string, page *content.Page) {
	if len(segments) == 1 {
		d.pages = append(d.pages, page)
		return
	}
	child, ok := d.dirs[segments[0]]
	if !ok {
		child = newDirNode()
		d.dirs[segments[0]] = child
	}
	child.add(segments[1:], page)
}

type sortable struct {
	name  string
	order *int
	entry *site.Entry
}

func (d *dirNode) entries(collapsed bool) []*site.Entry {
	items := []sortable{}
	for _, page := range d.pages {
		items = append(items, sortable{
			name:  path.Base(page.Path),
			order: page.Sidebar.Order,
			entry: site.NewLink(page.Label(), page.Slug),
		})
	}
	for name, dir := range d.dirs {
		children := dir.entries(collapsed)
		if len(children) == 0 {
			continue
		}
		group := site.NewGroup(content.TitleFromName(name), children...)
		group.Collapsed = collapsed
		items = append(items, sortable{name: name, entry: group})
	}
	sort.SliceStable(items, func(i, j int) bool {
		oi, oj := items[i].order, items[j].order
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		return items[i].name < items[j].name
	})
	entries := make([]*site.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, item.entry)
	}
	return entries
}
