// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDir is the documentation content root of a Starlight project
const DefaultDir = "src/content/docs"

// Extensions of content pages, in lookup order
var Extensions = []string{".md", ".mdx", ".mdoc"}

// ErrPageNotFound indicates that a slug has no page in the content tree
var ErrPageNotFound = errors.New("page not found")

// Interface gives access to the documentation content tree
type Interface interface {
	// Resolve returns the content file path of a slug
	Resolve(slug string) (string, error)
	// IsDir checks if a directory exists in the content tree
	IsDir(directory string) bool
	// Tree returns the content files beneath a directory, relative to it
	Tree(directory string) ([]string, error)
	// Page reads the page metadata of a content file
	Page(filePath string) (*Page, error)
}

// Local is a content tree backed by a file system
type Local struct {
	fsys fs.FS
}

// New creates a content tree from a file system rooted at the content directory
func New(fsys fs.FS) *Local {
	return &Local{fsys: fsys}
}

// NewDir creates a content tree rooted at a local directory
func NewDir(dir string) *Local {
	return New(os.DirFS(dir))
}

// Resolve returns the content file whose slug is the given one. It tries
// <slug>.<ext> and <slug>/index.<ext> for all content extensions first, and
// then the slugs of all content files.
func (l *Local) Resolve(slug string) (string, error) {
	slug = strings.Trim(slug, "/")
	if !fs.ValidPath(slug) {
		return "", fmt.Errorf("invalid slug %s", slug)
	}
	target := slug
	if path.Base(target) == "index" && path.Dir(target) != "." {
		target = path.Dir(target)
	}
	candidates := []string{}
	for _, ext := range Extensions {
		candidates = append(candidates, slug+ext)
	}
	for _, ext := range Extensions {
		candidates = append(candidates, path.Join(slug, "index"+ext))
	}
	for _, candidate := range candidates {
		info, err := fs.Stat(l.fsys, candidate)
		if err == nil && !info.IsDir() && Slug(candidate) == target {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("resolving slug %s failed: %w", slug, err)
		}
	}
	found := ""
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsContentFile(p) && Slug(p) == target {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("resolving slug %s failed: %w", slug, err)
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	return found, nil
}

// IsDir checks if a directory exists in the content tree
func (l *Local) IsDir(directory string) bool {
	directory = strings.Trim(directory, "/")
	if !fs.ValidPath(directory) {
		return false
	}
	info, err := fs.Stat(l.fsys, directory)
	return err == nil && info.IsDir()
}

// Tree returns the content files beneath a directory, in lexical order
func (l *Local) Tree(directory string) ([]string, error) {
	directory = strings.Trim(directory, "/")
	if !l.IsDir(directory) {
		return nil, fmt.Errorf("expected a content directory got %s", directory)
	}
	files := []string{}
	err := fs.WalkDir(l.fsys, directory, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsContentFile(p) {
			return nil
		}
		if directory != "." {
			p = strings.TrimPrefix(strings.TrimPrefix(p, directory), "/")
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking content directory %s failed: %w", directory, err)
	}
	return files, nil
}

// Page reads the page metadata of a content file
func (l *Local) Page(filePath string) (*Page, error) {
	cnt, err := fs.ReadFile(l.fsys, filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPageNotFound, filePath)
		}
		return nil, fmt.Errorf("reading content file %s fails: %w", filePath, err)
	}
	page, err := ParsePage(cnt)
	if err != nil {
		return nil, fmt.Errorf("content file %s: %w", filePath, err)
	}
	page.Path = filePath
	page.Slug = Slug(filePath)
	return page, nil
}

// IsContentFile checks the extension of a file against the content extensions
func IsContentFile(name string) bool {
	ext := path.Ext(name)
	for _, e := range Extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Slug computes the slug of a content file: the path without extension with
// every segment slugified, and index pages addressed by their directory
func Slug(filePath string) string {
	segments := strings.Split(strings.TrimSuffix(filePath, path.Ext(filePath)), "/")
	for i, segment := range segments {
		segments[i] = slugify(segment)
	}
	slug := strings.Join(segments, "/")
	if path.Base(slug) == "index" {
		if dir := path.Dir(slug); dir != "." {
			return dir
		}
	}
	return slug
}

// slugify lowercases a path segment, turns spaces into `-` and drops
// punctuation other than `-` and `_`
func slugify(segment string) string {
	var b strings.Builder
	for _, r := range cases.Lower(language.Und).String(segment) {
		switch {
		case r == ' ':
			b.WriteRune('-')
		case r == '-', r == '_', unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
