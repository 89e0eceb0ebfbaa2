package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	BackendBaseURL  string // airline backend API base URL (".../api")
	BackendToken    string // bearer token forwarded on authenticated backend calls (optional)
	BackendUserID   string // user-id header forwarded alongside the bearer token (optional)
	SessionSecret   string // secret used to sign booking-session JWTs
	SessionTTLHours int    // booking-session token time-to-live in hours
	DraftStore      string // draft store backend: "redis", "mysql" or "memory"
	DraftTTLHours   int    // draft lifetime in hours (redis store)
	DBUser          string // database username (mysql draft store)
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Database variables
// are only required when the MySQL draft store is selected.
func Load() Config {
	cfg := Config{
		Env:             must("APP_ENV"),                     // environment (dev/test/prod)
		Port:            must("APP_PORT"),                    // port to bind the HTTP server
		BackendBaseURL:  must("BACKEND_BASE_URL"),            // airline backend API root
		BackendToken:    os.Getenv("BACKEND_TOKEN"),          // optional bearer token
		BackendUserID:   os.Getenv("BACKEND_USER_ID"),        // optional user-id header
		SessionSecret:   must("SESSION_SECRET"),              // secret for session JWTs
		SessionTTLHours: mustInt("SESSION_TTL_HOURS"),        // TTL for session tokens
		DraftStore:      getenv("DRAFT_STORE", "redis"),      // draft persistence backend
		DraftTTLHours:   atoi(getenv("DRAFT_TTL_HOURS", "24")), // draft lifetime
	}
	if cfg.DraftStore == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
