// Package mvc is a small controller framework for server-rendered sites
// with themed layouts.
//
// A route maps to a controller [Factory]. For every request the router
// builds a [Base] (route, request, view data, request-scoped config) and
// hands it to the factory. The resulting [Controller] runs
//
//	RunBefore -> Run -> RunAfter
//
// and any error or panic in those steps goes to HandleError.
//
// # Controllers
//
// Embed *Base and implement Run:
//
//	type About struct {
//	    *mvc.Base
//	}
//
//	func NewAbout(b *mvc.Base) mvc.Controller { return &About{Base: b} }
//
//	func (a *About) Run(ctx context.Context) error {
//	    a.SetMetas(mvc.WithMetaTitle("About"), mvc.WithMetaDescription("Who we are"))
//	    a.AddData("team", team)
//	    return a.Render(ctx, http.StatusOK, views.About())
//	}
//
//	type Pages struct{}
//
//	func (Pages) Routes(r mvc.Router) {
//	    r.GET("/about", NewAbout)
//	}
//
// The default RunBefore reads the theme from config ("theme.name" and
// "theme.layoutPath"); Render wraps content in
// <layoutPath>/Template/<theme>/Main.
//
// # Page metadata
//
// SetMetas with WithMetaTitle prefixes the configured site title
// ("About - Acme"); WithMetaDescription replaces the description. Markup
// is stripped from both. The change is local to the request: each
// request works on a clone of the application config.
//
// # Errors
//
// The default HandleError sends JSON for AJAX requests (a non-blank
// X-Requested-With header) and the theme's Main layout with status 500
// otherwise. Outside production the layout's "content" variable holds
// "<b>Exception[code]: message</b><pre>trace</pre>". Return an
// [Exception] to set the code or status:
//
//	return mvc.NewException(404, "post not found", mvc.WithStatus(http.StatusNotFound))
//
// # Configuration
//
//	cfg := config.MustLoadFile(assets, "config.yaml")
//	app := mvc.New(
//	    mvc.WithConfig(cfg),
//	    mvc.WithViews(view.NewEngine(themes)),
//	    mvc.WithLogger("site", middlewares.RequestIDExtractor()),
//	    mvc.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    mvc.WithHandlers(Pages{}),
//	    mvc.WithNotFound(mvc.StatusFactory(http.StatusNotFound)),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
package mvc
