// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package starlight

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/aiide/starforge/pkg/internal/must"
	"github.com/aiide/starforge/pkg/site"
)

// ConfigFileName is the Astro configuration file the Starlight integration is registered in
const ConfigFileName = "astro.config.mjs"

const configTemplate = `import { defineConfig } from 'astro/config';
import starlight from '@astrojs/starlight';

// https://astro.build/config
export default defineConfig({
	integrations: [
		starlight({
			title: {{ quote .Title }},
{{- if .Social }}
			social: {
{{- range .Social }}
				{{ key .Platform }}: {{ quote .URL }},
{{- end }}
			},
{{- end }}
			sidebar: {{ template "entries" (nest .Sidebar 3) }},
		}),
	],
});
`

const entriesTemplate = `
{{- define "entries" -}}
[
{{- range .Entries }}
{{ indent $.Depth 1 }}{
{{ indent $.Depth 2 }}label: {{ quote .Label }},
{{- if .Slug }}
{{ indent $.Depth 2 }}slug: {{ quote .Slug }},
{{- else if .Link }}
{{ indent $.Depth 2 }}link: {{ quote .Link }},
{{- else if .Autogenerate }}
{{ indent $.Depth 2 }}autogenerate: { directory: {{ quote .Autogenerate.Directory }}{{ if .Autogenerate.Collapsed }}, collapsed: true{{ end }} },
{{- else }}
{{ indent $.Depth 2 }}items: {{ template "entries" (nest .Items (add $.Depth 2)) }},
{{- end }}
{{- if .Collapsed }}
{{ indent $.Depth 2 }}collapsed: true,
{{- end }}
{{ indent $.Depth 1 }}},
{{- end }}
{{- if .Entries }}
{{ indent .Depth 0 }}
{{- end -}}
]
{{- end }}`

type level struct {
	Entries []*site.Entry
	Depth   int
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

var funcs = template.FuncMap{
	"quote": Quote,
	"key": func(name string) string {
		if identifier.MatchString(name) {
			return name
		}
		return Quote(name)
	},
	"indent": func(depth, offset int) string {
		return strings.Repeat("\t", depth+offset)
	},
	"nest": func(entries []*site.Entry, depth int) level {
		return level{Entries: entries, Depth: depth}
	},
	"add": func(a, b int) int {
		return a + b
	},
}

var tmpl = must.Succeed(must.Succeed(template.New(ConfigFileName).Funcs(funcs).Parse(entriesTemplate)).Parse(configTemplate))

// Quote renders s as a single-quoted JavaScript string literal
func Quote(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}

// Render writes the Astro configuration registering the Starlight
// integration with the site title, social links and sidebar
func Render(cfg *site.SiteConfig, w io.Writer) error {
	if cfg == nil {
		return fmt.Errorf("site configuration is nil")
	}
	var b bytes.Buffer
	if err := tmpl.Execute(&b, cfg); err != nil {
		return fmt.Errorf("rendering %s failed: %w", ConfigFileName, err)
	}
	_, err := w.Write(b.Bytes())
	return err
}
