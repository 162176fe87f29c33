// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// goldmark.Markdown parser with frontmatter support
var gmParser = goldmark.New(goldmark.WithExtensions(meta.Meta))

// Page is the sidebar relevant metadata of a content page
type Page struct {
	// Path of the content file relative to the content root
	Path string
	// Slug of the page
	Slug string
	// Title from frontmatter
	Title string
	// Draft pages are excluded from generated sidebars
	Draft bool
	// Sidebar holds the frontmatter sidebar overrides
	Sidebar SidebarMeta
}

// SidebarMeta is the `sidebar` frontmatter property of a page
type SidebarMeta struct {
	Label  string
	Order  *int
	Hidden bool
}

// ParsePage parses the frontmatter of a markdown page
func ParsePage(source []byte) (*Page, error) {
	context := parser.NewContext()
	gmParser.Parser().Parse(text.NewReader(source), parser.WithContext(context))
	fm, err := meta.TryGet(context)
	if err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	page := &Page{}
	page.Title = stringProperty(fm, "title")
	page.Draft = boolProperty(fm, "draft")
	if sidebar := mapProperty(fm, "sidebar"); sidebar != nil {
		page.Sidebar.Label = stringProperty(sidebar, "label")
		page.Sidebar.Hidden = boolProperty(sidebar, "hidden")
		if order, ok := sidebar["order"]; ok {
			switch o := order.(type) {
			case int:
				page.Sidebar.Order = &o
			case float64:
				i := int(o)
				page.Sidebar.Order = &i
			default:
				return nil, fmt.Errorf("sidebar.order must be a number, got %v", order)
			}
		}
	}
	return page, nil
}

// Label is the sidebar label of the page: sidebar.label,
// title or the title-cased file name
func (p *Page) Label() string {
	if p.Sidebar.Label != "" {
		return p.Sidebar.Label
	}
	if p.Title != "" {
		return p.Title
	}
	return TitleFromName(path.Base(p.Slug))
}

// Visible reports if the page belongs into a generated sidebar
func (p *Page) Visible() bool {
	return !p.Draft && !p.Sidebar.Hidden
}

// TitleFromName normalizes a file or directory name as a title -
// removing `-`, `_`, the extension and converting to title case.
func TitleFromName(name string) string {
	title := strings.TrimSuffix(name, path.Ext(name))
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	return cases.Title(language.English).String(title)
}

func stringProperty(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func boolProperty(m map[string]interface{}, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// goldmark-meta decodes nested mappings as map[interface{}]interface{}
func mapProperty(m map[string]interface{}, key string) map[string]interface{} {
	switch v := m[key].(type) {
	case map[string]interface{}:
		return v
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[fmt.Sprintf("%v", k)] = val
		}
		return out
	}
	return nil
}
