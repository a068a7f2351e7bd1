// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS). AppConfig is everything specific to EduHub:
// database connection, session cookies, and the optional seed admin used
// to bootstrap a fresh install.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: eduhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Seed admin bootstrap. When both are set and no user exists with this
	// email, Startup creates an admin account so a fresh install is usable.
	SeedAdminEmail    string
	SeedAdminPassword string
}
