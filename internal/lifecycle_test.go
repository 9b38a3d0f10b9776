package internal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/internal"
)

type stepController struct {
	*internal.Base
	fail    map[string]error
	panicAt string
	steps   []string
	handled error
}

func newStepController() *stepController {
	return &stepController{
		Base: internal.NewBase(internal.Route{}),
		fail: map[string]error{},
	}
}

func (s *stepController) step(name string) error {
	s.steps = append(s.steps, name)
	if s.panicAt == name {
		panic("kaboom")
	}
	return s.fail[name]
}

func (s *stepController) RunBefore(context.Context) error { return s.step("before") }
func (s *stepController) Run(context.Context) error { return s.step("run") }
func (s *stepController) RunAfter(context.Context) error { return s.step("after") }

func (s *stepController) HandleError(_ context.Context, err error) error {
	s.handled = err
	return s.step("handle")
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success runs all steps in order", func(t *testing.T) {
		t.Parallel()

		c := newStepController()
		require.NoError(t, internal.Dispatch(ctx, c))
		require.Equal(t, []string{"before", "run", "after"}, c.steps)
		require.NoError(t, c.handled)
	})

	t.Run("run error skips after", func(t *testing.T) {
		t.Parallel()

		errRun := errors.New("run failed")
		c := newStepController()
		c.fail["run"] = errRun

		require.NoError(t, internal.Dispatch(ctx, c))
		require.Equal(t, []string{"before", "run", "handle"}, c.steps)
		require.ErrorIs(t, c.handled, errRun)
	})

	t.Run("before error skips action", func(t *testing.T) {
		t.Parallel()

		c := newStepController()
		c.fail["before"] = errors.New("no theme")

		require.NoError(t, internal.Dispatch(ctx, c))
		require.Equal(t, []string{"before", "handle"}, c.steps)
	})

	t.Run("after error is handled", func(t *testing.T) {
		t.Parallel()

		c := newStepController()
		c.fail["after"] = errors.New("flush failed")

		require.NoError(t, internal.Dispatch(ctx, c))
		require.Equal(t, []string{"before", "run", "after", "handle"}, c.steps)
	})

	t.Run("panic becomes exception", func(t *testing.T) {
		t.Parallel()

		c := newStepController()
		c.panicAt = "run"

		require.NoError(t, internal.Dispatch(ctx, c))
		require.Equal(t, []string{"before", "run", "handle"}, c.steps)

		ex := internal.AsException(c.handled)
		require.Equal(t, "panic: kaboom", ex.Message)
		require.NotEmpty(t, ex.Trace)
	})

	t.Run("handle error failure is returned", func(t *testing.T) {
		t.Parallel()

		errSend := errors.New("send failed")
		c := newStepController()
		c.fail["run"] = errors.New("x")
		c.fail["handle"] = errSend

		require.ErrorIs(t, internal.Dispatch(ctx, c), errSend)
	})

	t.Run("panic in handle error is recovered", func(t *testing.T) {
		t.Parallel()

		c := newStepController()
		c.fail["run"] = errors.New("x")
		c.panicAt = "handle"

		err := internal.Dispatch(ctx, c)
		require.True(t, internal.IsException(err))
	})
}

func TestExecute(t *testing.T) {
	t.Parallel()

	c := newStepController()
	c.fail["run"] = errors.New("x")

	require.Error(t, internal.Execute(context.Background(), c))
	require.Equal(t, []string{"before", "run"}, c.steps)
}

func TestStatusFactory(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	b := newTestBase(t, httptest.NewRequest(http.MethodGet, "/missing", nil), rec, themeConfig("dev"))

	require.NoError(t, internal.Dispatch(context.Background(), internal.StatusFactory(http.StatusNotFound)(b)))
	requireStatus(t, rec, http.StatusNotFound)
	require.Contains(t, rec.Body.String(), "Exception[404]: Not Found")
}

type renderThenFail struct {
	*internal.Base
	afterErr error
}

func (c *renderThenFail) Run(ctx context.Context) error {
	return c.Render(ctx, http.StatusOK, fragment("<h1>ok</h1>"))
}

func (c *renderThenFail) RunAfter(context.Context) error { return c.afterErr }

func TestDispatch_ErrorAfterResponseSent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	w := internal.NewResponseWriter(rec)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	c := &renderThenFail{
		Base:     newTestBase(t, r, w, themeConfig("dev")),
		afterErr: errors.New("audit write failed"),
	}

	require.NoError(t, internal.Dispatch(context.Background(), c))
	requireStatus(t, rec, http.StatusOK)
	require.Equal(t, "<title>Site</title><main><h1>ok</h1></main>", rec.Body.String())
}
