// Package bootstrap runs the lifecycle shared by the council binaries.
//
// An App loads nothing itself: it takes a typed config that embeds
// config.ServiceConfig, initializes logging from it, and runs start, ready
// and stop hooks around either a long-running service (Run) or a finite
// task such as a single council query (RunTask).
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStart(srv.Start)
//	app.OnStop(srv.Stop)
//	return app.Run(ctx)
package bootstrap
