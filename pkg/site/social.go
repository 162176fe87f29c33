// SPDX-FileCopyrightText: 2023 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SocialLink is a single platform -> URL pair
type SocialLink struct {
	Platform string
	URL      string
}

// Social is a mapping from platform name to URL that keeps
// declaration order when serialized
type Social []SocialLink

// Get returns the URL of a platform
func (s Social) Get(platform string) (string, bool) {
	for _, link := range s {
		if link.Platform == platform {
			return link.URL, true
		}
	}
	return "", false
}

// Set adds or replaces the URL of a platform
func (s *Social) Set(platform, url string) {
	for i := range *s {
		if (*s)[i].Platform == platform {
			(*s)[i].URL = url
			return
		}
	}
	*s = append(*s, SocialLink{Platform: platform, URL: url})
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Social) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: social must be a mapping from platform to URL", value.Line)
	}
	links := Social{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var platform, url string
		if err := value.Content[i].Decode(&platform); err != nil {
			return err
		}
		if err := value.Content[i+1].Decode(&url); err != nil {
			return fmt.Errorf("social %s: %w", platform, err)
		}
		if _, ok := links.Get(platform); ok {
			return fmt.Errorf("line %d: duplicate social platform %s", value.Content[i].Line, platform)
		}
		links = append(links, SocialLink{Platform: platform, URL: url})
	}
	*s = links
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (s Social) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, link := range s {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: link.Platform},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: link.URL},
		)
	}
	return node, nil
}

// MarshalJSON implements json.Marshaler
func (s Social) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, link := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(link.Platform)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(link.URL)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Social) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("social must be an object from platform to URL")
	}
	links := Social{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		platform, _ := tok.(string)
		var url string
		if err = dec.Decode(&url); err != nil {
			return fmt.Errorf("social %s: %w", platform, err)
		}
		if _, ok := links.Get(platform); ok {
			return fmt.Errorf("duplicate social platform %s", platform)
		}
		links = append(links, SocialLink{Platform: platform, URL: url})
	}
	if _, err = dec.Token(); err != nil {
		return err
	}
	*s = links
	return nil
}
