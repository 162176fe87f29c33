// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

const (
	watchDebounceDelay = 100 * time.Millisecond
)

// Watcher encapsulates file watch and configuration,
// abstracting form the underlying file watch provider
type Watcher struct {
	Watcher      *fsnotify.Watcher
	WatchedFiles []string
	WatchedDirs  []string
	watched      map[string]bool
}

// NewFileWatcher creates Watcher
func NewFileWatcher() *Watcher {
	return &Watcher{
		WatchedFiles: []string{},
		WatchedDirs:  []string{},
		watched:      map[string]bool{},
	}
}

// AddToWatch adds files to the WatchedFiles list monitored by the Watcher
func (w *Watcher) AddToWatch(files ...string) {
	for _, file := range files {
		w.WatchedFiles = append(w.WatchedFiles, filepath.Clean(file))
	}
}

// AddDirToWatch adds directory trees to the WatchedDirs list monitored by the Watcher
func (w *Watcher) AddDirToWatch(dirs ...string) {
	for _, dir := range dirs {
		w.WatchedDirs = append(w.WatchedDirs, filepath.Clean(dir))
	}
}

// Watch starts monitoring WatchedFiles and WatchedDirs until ctx is done. If nothing is
// watched, Watch returns immediately. The eventHandler function is invoked, debounced,
// upon write, create, remove and rename events of the watched files.
func (w *Watcher) Watch(ctx context.Context, eventHandler func() error) error {
	if len(w.WatchedFiles) == 0 && len(w.WatchedDirs) == 0 {
		return nil
	}
	if w.Watcher == nil {
		var err error
		if w.Watcher, err = fsnotify.NewWatcher(); err != nil {
			return err
		}
	}
	defer func() {
		_ = w.Watcher.Close()
		klog.V(6).Infof("watching files stopped")
	}()

	// watch the parent directory of the target files so that
	// files replaced by editors are caught
	for _, file := range w.WatchedFiles {
		if err := w.add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("could not watch %v: %w", file, err)
		}
	}
	for _, dir := range w.WatchedDirs {
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return w.add(p)
		})
		if err != nil {
			return fmt.Errorf("could not watch %v: %w", dir, err)
		}
	}
	klog.V(6).Info("watching files started")

	var timerC <-chan time.Time
	for {
		select {
		case <-timerC:
			timerC = nil
			if eventHandler != nil {
				if err := eventHandler(); err != nil {
					klog.Errorf("handling file changes failed: %v", err)
				}
			}
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 || !w.relevant(event.Name) {
				continue
			}
			klog.V(6).Infof("%s: %s", event.Op, event.Name)
			if event.Op&fsnotify.Create != 0 && w.inWatchedDir(event.Name) {
				// new directories beneath watched trees
				_ = w.add(event.Name)
			}
			// use a timer to debounce updates
			timerC = time.After(watchDebounceDelay)
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return nil
			}
			klog.V(6).Infof("watcher error: %v", err)
		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) add(dir string) error {
	if w.watched == nil {
		w.watched = map[string]bool{}
	}
	if w.watched[dir] {
		return nil
	}
	if err := w.Watcher.Add(dir); err != nil {
		return err
	}
	klog.V(6).Infof("watching %s", dir)
	w.watched[dir] = true
	return nil
}

func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	for _, file := range w.WatchedFiles {
		if file == name {
			return true
		}
	}
	return w.inWatchedDir(name)
}

func (w *Watcher) inWatchedDir(name string) bool {
	for _, dir := range w.WatchedDirs {
		if rel, err := filepath.Rel(dir, name); err == nil && rel != ".." && !strings.HasPrefix(rel, "../") {
			return true
		}
	}
	return false
}
