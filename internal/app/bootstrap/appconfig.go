// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, CORS, and request size limits.
// AppConfig is where everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// ScreenNameSuffix is the email suffix stripped when deriving a
	// member's screen name at registration.
	ScreenNameSuffix string

	// Transaction retry policy for the registration/post/reply writes.
	TxnMaxAttempts  int
	TxnRetryBackoff time.Duration

	// DefaultPageSize is the page size used when a paged feed request
	// omits the size parameter.
	DefaultPageSize int64
}
