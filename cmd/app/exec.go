// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aiide/starforge/cmd/configuration"
	"github.com/aiide/starforge/pkg/content"
	"github.com/aiide/starforge/pkg/manifest"
	"github.com/aiide/starforge/pkg/manifestplugins"
	"github.com/aiide/starforge/pkg/manifestplugins/autogenerate"
	"github.com/aiide/starforge/pkg/manifestplugins/contentcheck"
	"github.com/aiide/starforge/pkg/registry"
	"github.com/aiide/starforge/pkg/renderers/starlight"
	"github.com/aiide/starforge/pkg/site"
	"github.com/aiide/starforge/pkg/util/files"
	"github.com/aiide/starforge/pkg/workers/socialcheck"
	"github.com/aiide/starforge/pkg/writers"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

func exec(ctx context.Context, vip *viper.Viper, loader configuration.Loader, stdout io.Writer) error {
	var options options
	if err := vip.Unmarshal(&options); err != nil {
		return err
	}
	config, err := loader.Load()
	if err != nil {
		return err
	}
	if err = completeOptions(&options, config); err != nil {
		return err
	}
	klog.Infof("Manifest: %s", options.ManifestPath)
	klog.Infof("Output: %s", filepath.Join(options.DestinationPath, options.OutputFile))
	if options.needsContent() {
		klog.Infof("Content dir: %s", options.ContentDir)
	}

	b := &builder{options: options, stdout: stdout}
	if options.CheckSocial {
		rhs, err := initRepositoryHosts(ctx, options.InitOptions)
		if err != nil {
			return err
		}
		b.registry = registry.NewRegistry(rhs...)
		defer b.registry.LogRateLimits(ctx)
	}
	if err = b.build(ctx); err != nil {
		if !options.Watch {
			return err
		}
		klog.Error(err)
	}
	if !options.Watch {
		return nil
	}
	return b.watch(ctx)
}

type builder struct {
	options  options
	registry registry.Interface
	stdout   io.Writer
}

func (b *builder) build(ctx context.Context) error {
	o := b.options
	var c content.Interface
	if o.needsContent() {
		c = content.NewDir(o.ContentDir)
	}
	cfg, err := manifest.ResolveManifest(o.ManifestPath, c, pluginTransformations(o)...)
	if err != nil {
		return err
	}
	if o.Resolve {
		resolved, err := site.Marshal(cfg, site.FormatYAML)
		if err != nil {
			return err
		}
		fmt.Fprintln(b.stdout, string(resolved))
	}
	if b.registry != nil {
		if err := checkSocial(ctx, cfg, b.registry, o.SocialCheckWorkers); err != nil {
			return err
		}
	}
	out, err := render(cfg, o.Format)
	if err != nil {
		return err
	}

	var (
		w      writers.Writer
		dryRun writers.DryRunWriter
	)
	if o.DryRun {
		dryRun = writers.NewDryRunWritersFactory(b.stdout, true)
		w = dryRun.GetWriter(o.DestinationPath)
	} else {
		w = &writers.FSWriter{Root: o.DestinationPath}
	}
	if err = w.Write(filepath.Base(o.OutputFile), filepath.Dir(o.OutputFile), out); err != nil {
		return err
	}
	if dryRun != nil {
		dryRun.Flush()
	}
	klog.Infof("Wrote %s with %d sidebar links", o.OutputFile, len(site.Links(cfg.Sidebar)))
	return nil
}

func (b *builder) watch(ctx context.Context) error {
	w := files.NewFileWatcher()
	w.AddToWatch(b.options.ManifestPath)
	if b.options.needsContent() {
		w.AddDirToWatch(b.options.ContentDir)
	}
	klog.Infof("Watching for changes, press Ctrl+C to stop")
	return w.Watch(ctx, func() error {
		klog.Infof("Change detected, rebuilding")
		return b.build(ctx)
	})
}

func pluginTransformations(o options) []manifest.EntryTransformation {
	plugins := []manifestplugins.Interface{}
	// content is checked before autogenerated groups are expanded
	if o.CheckContent {
		plugins = append(plugins, &contentcheck.ContentCheck{})
	}
	if o.ExpandAutogenerate {
		plugins = append(plugins, &autogenerate.Autogenerate{})
	}
	transformations := []manifest.EntryTransformation{}
	for _, plugin := range plugins {
		transformations = append(transformations, plugin.PluginEntryTransformations()...)
	}
	return transformations
}

func render(cfg *site.SiteConfig, format string) ([]byte, error) {
	if format != formatMJS {
		return site.Marshal(cfg, format)
	}
	var b bytes.Buffer
	if err := starlight.Render(cfg, &b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func checkSocial(ctx context.Context, cfg *site.SiteConfig, r registry.Interface, workers int) error {
	return socialcheck.CheckAll(ctx, cfg.Social, workers, r)
}
