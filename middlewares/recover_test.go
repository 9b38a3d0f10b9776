package middlewares_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/internal"
	"github.com/dmitrymomot/mvc/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes error page", func(t *testing.T) {
		t.Parallel()

		h := func(internal.Context) error { panic("boom") }
		rec := do(newApp(h, []internal.Middleware{middlewares.Recover()}))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, `"panic: boom"`, rec.Body.String())
	})

	t.Run("exception carries stack", func(t *testing.T) {
		t.Parallel()

		var got error
		h := func(internal.Context) error { panic(errors.New("nil deref")) }
		app := newApp(h,
			[]internal.Middleware{middlewares.Recover(middlewares.WithRecoverStackSize(512), middlewares.WithRecoverDisablePrintStack())},
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.NoContent(http.StatusTeapot)
			}),
		)

		rec := do(app)
		require.Equal(t, http.StatusTeapot, rec.Code)

		ex := internal.AsException(got)
		require.True(t, internal.IsException(got))
		require.Equal(t, "panic: nil deref", ex.Message)
		require.LessOrEqual(t, len(ex.Trace), 512)
		require.Contains(t, ex.Trace, "goroutine")
	})

	t.Run("errors pass through", func(t *testing.T) {
		t.Parallel()

		h := func(c internal.Context) error { return c.String(http.StatusOK, "fine") }
		rec := do(newApp(h, []internal.Middleware{middlewares.Recover()}))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "fine", rec.Body.String())
	})
}
