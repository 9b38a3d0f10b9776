package config_test

import (
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/config"
)

func TestStore_GetAdd(t *testing.T) {
	t.Parallel()

	t.Run("missing key returns ErrKeyNotFound", func(t *testing.T) {
		t.Parallel()

		s := config.New()
		_, err := s.Get("theme.name")
		require.ErrorIs(t, err, config.ErrKeyNotFound)
		require.True(t, config.IsNotFound(err))
	})

	t.Run("add overwrites", func(t *testing.T) {
		t.Parallel()

		s := config.New()
		s.Add("k", "a")
		s.Add("k", "b")

		v, err := s.Get("k")
		require.NoError(t, err)
		require.Equal(t, "b", v)
	})

	t.Run("delete removes key", func(t *testing.T) {
		t.Parallel()

		s := config.FromMap(map[string]any{"k": 1})
		require.True(t, s.Has("k"))
		s.Delete("k")
		require.False(t, s.Has("k"))
	})

	t.Run("keys are sorted", func(t *testing.T) {
		t.Parallel()

		s := config.FromMap(map[string]any{"b": 1, "a": 2, "c": 3})
		require.Equal(t, []string{"a", "b", "c"}, s.Keys())
	})
}

func TestValue(t *testing.T) {
	t.Parallel()

	s := config.FromMap(map[string]any{"name": "default", "port": 8080})

	name, err := config.Value[string](s, "name")
	require.NoError(t, err)
	require.Equal(t, "default", name)

	_, err = config.Value[string](s, "port")
	require.ErrorIs(t, err, config.ErrTypeMismatch)

	_, err = config.String(s, "missing")
	require.ErrorIs(t, err, config.ErrKeyNotFound)

	require.Equal(t, 8080, config.ValueOr(s, "port", 0))
	require.Equal(t, "fallback", config.ValueOr(s, "missing", "fallback"))
}

func TestStore_Clone(t *testing.T) {
	t.Parallel()

	t.Run("writes to clone do not leak", func(t *testing.T) {
		t.Parallel()

		base := config.New()
		base.Add(config.KeyMeta, config.Meta{Title: "Site"})

		c := base.Clone()
		c.Add(config.KeyMeta, config.Meta{Title: "Page - Site"})
		c.Add("extra", true)

		require.Equal(t, "Site", config.GetMeta(base).Title)
		require.False(t, base.Has("extra"))
	})

	t.Run("meta extra map is deep copied", func(t *testing.T) {
		t.Parallel()

		base := config.New()
		base.Add(config.KeyMeta, config.Meta{Extra: map[string]string{"keywords": "a"}})

		m := config.GetMeta(base.Clone())
		m.Extra["keywords"] = "b"

		require.Equal(t, "a", config.GetMeta(base).Extra["keywords"])
	})

	t.Run("concurrent clones are safe", func(t *testing.T) {
		t.Parallel()

		base := config.New()
		base.Add(config.KeyMeta, config.Meta{Title: "Site"})

		var wg sync.WaitGroup
		for range 50 {
			wg.Go(func() {
				c := base.Clone()
				c.Add(config.KeyMeta, config.Meta{Title: "x"})
			})
		}
		wg.Wait()

		require.Equal(t, "Site", config.GetMeta(base).Title)
	})
}

func TestStore_Merge(t *testing.T) {
	t.Parallel()

	a := config.FromMap(map[string]any{"a": 1, "b": 1})
	b := config.FromMap(map[string]any{"b": 2, "c": 2})
	a.Merge(b)

	require.Equal(t, 1, config.ValueOr(a, "a", 0))
	require.Equal(t, 2, config.ValueOr(a, "b", 0))
	require.Equal(t, 2, config.ValueOr(a, "c", 0))

	a.Merge(nil)
	a.Merge(a)
	require.Len(t, a.Keys(), 3)
}

func TestGetMeta(t *testing.T) {
	t.Parallel()

	t.Run("missing meta is zero value", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, config.Meta{}, config.GetMeta(config.New()))
	})

	t.Run("pointer meta is dereferenced", func(t *testing.T) {
		t.Parallel()

		s := config.New()
		s.Add(config.KeyMeta, &config.Meta{Title: "T"})
		require.Equal(t, "T", config.GetMeta(s).Title)
	})

	t.Run("foreign type is ignored", func(t *testing.T) {
		t.Parallel()

		s := config.New()
		s.Add(config.KeyMeta, "not meta")
		require.Equal(t, config.Meta{}, config.GetMeta(s))
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("decodes full document", func(t *testing.T) {
		t.Parallel()

		doc := `
env: dev
theme:
  name: default
  layout_path: layouts
meta:
  title: Acme
  description: Widgets
  extra:
    keywords: widgets
values:
  contact.email: hello@example.com
`
		s, err := config.Load(strings.NewReader(doc))
		require.NoError(t, err)

		env, err := config.String(s, config.KeyEnvironment)
		require.NoError(t, err)
		require.Equal(t, "dev", env)

		name, err := config.String(s, config.KeyThemeName)
		require.NoError(t, err)
		require.Equal(t, "default", name)

		path, err := config.String(s, config.KeyThemeLayoutPath)
		require.NoError(t, err)
		require.Equal(t, "layouts", path)

		meta := config.GetMeta(s)
		require.Equal(t, "Acme", meta.Title)
		require.Equal(t, "Widgets", meta.Description)
		require.Equal(t, "widgets", meta.Extra["keywords"])

		email, err := config.String(s, "contact.email")
		require.NoError(t, err)
		require.Equal(t, "hello@example.com", email)
	})

	t.Run("absent sections stay unset", func(t *testing.T) {
		t.Parallel()

		s, err := config.Load(strings.NewReader("env: prod\n"))
		require.NoError(t, err)
		require.False(t, s.Has(config.KeyThemeName))
		require.False(t, s.Has(config.KeyMeta))
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		s, err := config.Load(strings.NewReader(""))
		require.NoError(t, err)
		require.Empty(t, s.Keys())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(strings.NewReader("theme: [unclosed"))
		require.ErrorIs(t, err, config.ErrInvalidFormat)
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"config.yaml": {Data: []byte("theme:\n  name: dark\n")},
	}

	s, err := config.LoadFile(fsys, "config.yaml")
	require.NoError(t, err)
	require.Equal(t, "dark", config.ValueOr(s, config.KeyThemeName, ""))

	_, err = config.LoadFile(fsys, "missing.yaml")
	require.ErrorIs(t, err, config.ErrSourceUnavailable)

	require.Panics(t, func() { config.MustLoadFile(fsys, "missing.yaml") })
}
