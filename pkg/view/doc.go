// Package view renders theme layouts with html/template.
//
// An [Engine] reads templates from any fs.FS (an embed.FS in production,
// fstest.MapFS in tests) and caches each parsed file. A [Template] is a
// path with bound variables:
//
//	engine := view.NewEngine(os.DirFS("themes"))
//	page := engine.New("layouts/Template/default/Main").
//	    SetVar("content", template.HTML("<p>Hello</p>")).
//	    SetVar("meta", meta)
//	err := page.Render(ctx, w)
//
// Paths are relative to the file system root; ".html" is appended when the
// path has no extension. Templates satisfy templ.Component, and templ
// components can be embedded in templates with the "render" func.
package view
