// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires eduhub into WAFFLE's lifecycle: load and validate the
// EDUHUB_* config, connect Mongo, ensure the uniqueness indexes the bulk
// importers rely on, seed the optional admin account, then build the
// router.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "eduhub",
	LoadConfig:     LoadConfig,
	ValidateConfig: ValidateConfig,
	ConnectDB:      ConnectDB,
	EnsureSchema:   EnsureSchema,
	Startup:        Startup,
	BuildHandler:   BuildHandler,
	Shutdown:       Shutdown,
}
