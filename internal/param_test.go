package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/internal"
)

type (
	slug   string
	postID int
	score  float64
	flag   bool
)

func TestParam(t *testing.T) {
	t.Parallel()

	route := internal.Route{Params: map[string]string{
		"slug":  "hello-world",
		"id":    "42",
		"score": "4.5",
		"draft": "true",
		"bad":   "x1",
	}}

	t.Run("builtin types", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "hello-world", internal.Param[string](route, "slug"))
		require.Equal(t, 42, internal.Param[int](route, "id"))
		require.Equal(t, int64(42), internal.Param[int64](route, "id"))
		require.Equal(t, 4.5, internal.Param[float64](route, "score"))
		require.True(t, internal.Param[bool](route, "draft"))
	})

	t.Run("named types convert by underlying kind", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, slug("hello-world"), internal.Param[slug](route, "slug"))
		require.Equal(t, postID(42), internal.Param[postID](route, "id"))
		require.Equal(t, score(4.5), internal.Param[score](route, "score"))
		require.Equal(t, flag(true), internal.Param[flag](route, "draft"))
	})

	t.Run("malformed value is zero", func(t *testing.T) {
		t.Parallel()

		require.Zero(t, internal.Param[postID](route, "bad"))
		require.Zero(t, internal.Param[int](route, "missing"))
	})

	t.Run("default on missing or malformed", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, postID(7), internal.ParamDefault(route, "bad", postID(7)))
		require.Equal(t, slug("home"), internal.ParamDefault(route, "missing", slug("home")))
		require.Equal(t, postID(42), internal.ParamDefault(route, "id", postID(0)))
	})
}
