// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package writers

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// DryRunWriter is the functional interface for working
// with dry run writers
type DryRunWriter interface {
	// GetWriter creates DryRunWriters writing to the
	// same backend but for different roots
	GetWriter(root string) Writer
	// Flush wraps up dryrun writing and flushes
	// results to the underlying writer (e.g. os.Stdout)
	Flush() bool
}

type dryRunWriter struct {
	Writer io.Writer
	// Verbose also prints the written content
	Verbose bool
	mux     sync.Mutex
	files   []*file
	t1      time.Time
}

type file struct {
	path    string
	content []byte
}

type writer struct {
	root string
	d    *dryRunWriter
}

// NewDryRunWritersFactory creates factory for DryRunWriters
// writing to the same backend but for different roots
func NewDryRunWritersFactory(w io.Writer, verbose bool) DryRunWriter {
	return &dryRunWriter{
		Writer:  w,
		Verbose: verbose,
		files:   []*file{},
		t1:      time.Now(),
	}
}

func (d *dryRunWriter) GetWriter(root string) Writer {
	return &writer{
		root: root,
		d:    d,
	}
}

func (w *writer) Write(name, p string, content []byte) error {
	if len(name) == 0 {
		return fmt.Errorf("file name for path %s is empty", p)
	}
	f := &file{
		path:    strings.TrimPrefix(path.Join(w.root, p, name), "/"),
		content: content,
	}
	w.d.mux.Lock()
	defer w.d.mux.Unlock()
	w.d.files = append(w.d.files, f)
	return nil
}

// Flush formats and writes the dry-run result to the
// underlying writer
func (d *dryRunWriter) Flush() bool {
	var b bytes.Buffer
	d.mux.Lock()
	defer d.mux.Unlock()

	sort.Slice(d.files, func(i, j int) bool { return d.files[i].path < d.files[j].path })
	format(d.files, &b)
	if d.Verbose {
		for _, f := range d.files {
			b.WriteString(fmt.Sprintf("\n--- %s\n", f.path))
			b.Write(f.content)
		}
	}

	elapsedTime := time.Since(d.t1)
	b.WriteString(fmt.Sprintf("\nBuild finished in %f seconds\n", elapsedTime.Seconds()))

	if _, err := d.Writer.Write(b.Bytes()); err != nil {
		fmt.Println(err.Error())
		return false
	}
	return true
}

func format(files []*file, b *bytes.Buffer) {
	all := map[string]bool{}
	for _, f := range files {
		dd := strings.Split(f.path, "/")
		for i, s := range dd {
			_p := strings.Join(dd[:i+1], "/")
			if all[_p] {
				continue
			}
			all[_p] = true
			b.Write(bytes.Repeat([]byte("  "), i))
			if i == len(dd)-1 && f.content != nil {
				b.WriteString(fmt.Sprintf("%s (%d bytes)\n", s, len(f.content)))
				continue
			}
			b.WriteString(fmt.Sprintf("%s\n", s))
		}
	}
}
