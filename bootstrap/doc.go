// Package bootstrap orchestrates application lifecycle for socialfeed services.
//
// It wires a typed configuration, a component registry, and
// startup/shutdown hooks into one App.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = app.RegisterComponent(dbComponent)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    // register routes, then start the HTTP server
//	    return a.StartComponent(ctx, serverComponent)
//	})
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Components start in registration order and stop in reverse order on
// SIGINT/SIGTERM or context cancellation.
package bootstrap
