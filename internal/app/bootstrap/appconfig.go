// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: ports, TLS, log level and
// the like come from WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret   string        // Secret key for signing bearer tokens (must be strong in production)
	TokenExpiry time.Duration // Bearer token lifetime

	// Login rate limiting
	LoginIPLimit     int           // Login attempts allowed per client IP per window
	LoginIPWindow    time.Duration // Window for the per-IP login limit
	LoginEmailLimit  int           // Login attempts allowed per email per window
	LoginEmailWindow time.Duration // Window for the per-email login limit
	AuthedRateLimit  int           // Requests allowed per token subject per window
	AuthedRateWindow time.Duration // Window for the per-subject limit
}
