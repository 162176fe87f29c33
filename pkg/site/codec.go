// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	// FormatYAML serializes the configuration as YAML
	FormatYAML = "yaml"
	// FormatJSON serializes the configuration as JSON
	FormatJSON = "json"
)

// ErrUnsupportedFormat is returned for unknown serialization formats
var ErrUnsupportedFormat = errors.New("unsupported format")

// Parse decodes a site configuration from YAML or JSON. Unknown keys
// are rejected so that misspelled sidebar keys do not go unnoticed.
func Parse(data []byte) (*SiteConfig, error) {
	cfg := &SiteConfig{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("site configuration is empty")
	}
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		err := dec.Decode(cfg)
		if err == nil {
			return cfg, nil
		}
		// a flow mapping is valid YAML but not JSON
		var syntaxErr *json.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("can't parse site configuration json content: %w", err)
		}
		cfg = &SiteConfig{}
	}
	dec := yaml.NewDecoder(bytes.NewReader(trimmed))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("can't parse site configuration yaml content: %w", err)
	}
	return cfg, nil
}

// Marshal serializes the site configuration in the given format
func Marshal(cfg *SiteConfig, format string) ([]byte, error) {
	switch format {
	case FormatYAML, "yml":
		buf := bytes.Buffer{}
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}
