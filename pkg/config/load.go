package config

import (
	"errors"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// fileSchema is the YAML layout accepted by Load.
//
//	env: dev
//	theme:
//	  name: default
//	  layout_path: layouts
//	meta:
//	  title: Acme
//	  description: Widgets and more
//	  extra:
//	    keywords: widgets
//	values:
//	  contact.email: hello@example.com
type fileSchema struct {
	Values map[string]any `yaml:"values"`
	Meta   *Meta          `yaml:"meta"`
	Env    string         `yaml:"env"`
	Theme  struct {
		Name       string `yaml:"name"`
		LayoutPath string `yaml:"layout_path"`
	} `yaml:"theme"`
}

// Load decodes a YAML document into a new Store.
// Sections that are absent leave their keys unset, so reads of them
// report ErrKeyNotFound.
func Load(r io.Reader) (*Store, error) {
	var doc fileSchema
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidFormat, err)
	}

	s := New()
	for k, v := range doc.Values {
		s.Add(k, v)
	}
	if doc.Env != "" {
		s.Add(KeyEnvironment, doc.Env)
	}
	if doc.Theme.Name != "" {
		s.Add(KeyThemeName, doc.Theme.Name)
	}
	if doc.Theme.LayoutPath != "" {
		s.Add(KeyThemeLayoutPath, doc.Theme.LayoutPath)
	}
	if doc.Meta != nil {
		s.Add(KeyMeta, *doc.Meta)
	}
	return s, nil
}

// LoadFile reads and decodes the YAML file at path within fsys.
func LoadFile(fsys fs.FS, path string) (*Store, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Join(ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// MustLoadFile is like LoadFile but panics on error.
// Use for configuration embedded into the binary.
func MustLoadFile(fsys fs.FS, path string) *Store {
	s, err := LoadFile(fsys, path)
	if err != nil {
		panic(err)
	}
	return s
}
