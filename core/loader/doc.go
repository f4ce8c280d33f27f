// Package loader mounts feature modules on the Fiber app.
//
// A feature owns its routes and decides whether it is active. The start command
// registers every feature with a Manager and calls LoadAll once, after the global
// middleware is in place, so feature routes inherit ray id, request logging and
// API key checks.
//
// LoadAll skips disabled features, stops at the first Load error and returns the
// names that were mounted, which the start command logs.
//
//	mgr := loader.NewManager()
//	mgr.Register(catalog.NewFeature(svc))
//	loaded, err := mgr.LoadAll(app)
package loader
