package config

import "maps"

// Meta is the page metadata stored under KeyMeta.
// The zero value is an empty title and description.
type Meta struct {
	Extra       map[string]string `yaml:"extra" json:"extra,omitempty"`
	Title       string            `yaml:"title" json:"title"`
	Description string            `yaml:"description" json:"description"`
}

// CloneValue implements Cloner.
func (m Meta) CloneValue() any {
	m.Extra = maps.Clone(m.Extra)
	return m
}

// GetMeta reads the Meta stored under KeyMeta.
// A missing entry yields the zero Meta; a pointer is dereferenced.
func GetMeta(s *Store) Meta {
	v, err := s.Get(KeyMeta)
	if err != nil {
		return Meta{}
	}
	switch m := v.(type) {
	case Meta:
		return m
	case *Meta:
		if m != nil {
			return *m
		}
	}
	return Meta{}
}
