package view

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"

	"github.com/a-h/templ"
)

// Template is a template path plus the variables bound to it.
// It satisfies templ.Component so it can be nested in templ views and
// passed wherever a component is expected.
type Template struct {
	engine *Engine
	vars   map[string]any
	path   string
}

// Path returns the template path as given to Engine.New.
func (t *Template) Path() string { return t.path }

// SetVar binds value to name. Rebinding a name overwrites it.
func (t *Template) SetVar(name string, value any) *Template {
	t.vars[name] = value
	return t
}

// SetVars binds every entry of vars.
func (t *Template) SetVars(vars map[string]any) *Template {
	maps.Copy(t.vars, vars)
	return t
}

// Var returns the value bound to name.
func (t *Template) Var(name string) (any, bool) {
	v, ok := t.vars[name]
	return v, ok
}

// Vars returns a copy of all bound variables.
func (t *Template) Vars() map[string]any {
	return maps.Clone(t.vars)
}

// Render executes the template into w. Output is buffered, so nothing
// reaches w when parsing or execution fails.
func (t *Template) Render(ctx context.Context, w io.Writer) error {
	tmpl, err := t.engine.lookup(ctx, t.path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, t.vars); err != nil {
		return errors.Join(ErrRender, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

var _ templ.Component = (*Template)(nil)
