package config // package config loads application configuration from environment variables

import (
	"fmt"     // fmt builds the numbered admin slot variable names
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time expresses the token lifetime

	"github.com/schadenscheck/admin-api/internal/model" // credential record type
)

// Default values for settings that the environment may omit.  The token
// lifetime default of 24 hours matches how long an admin session is meant
// to survive without a fresh login.
const (
	DefaultTokenTTL   = 24 * time.Hour // lifetime applied to issued tokens
	DefaultBcryptCost = 10             // bcrypt cost for the dummy hash and hashgen
	DefaultCookieName = "admin_token"  // cookie carrying the session token
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, a duration for the
// token lifetime, an int for the bcrypt cost.
type Config struct {
	Env        string             // application environment (e.g. "dev", "prod")
	Port       string             // HTTP port to listen on
	JWTSecret  string             // secret used to sign session tokens
	TokenTTL   time.Duration      // lifetime of issued tokens
	BcryptCost int                // bcrypt cost for hashing
	CookieName string             // name of the session cookie
	Admins     []model.Credential // administrator accounts from numbered env slots
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Settings with sane
// defaults (token TTL, bcrypt cost, cookie name) may be omitted.
//
// Load does not validate the secret length or the credential hashes; those
// checks live with the components that own them (TokenCodec and
// CredentialRepo) so they can be exercised in tests, and main treats their
// errors as fatal before the listener starts.
func Load() Config {
	return Config{
		Env:        must("APP_ENV"),                                   // environment (dev/test/prod)
		Port:       must("APP_PORT"),                                  // port to bind the HTTP server
		JWTSecret:  must("JWT_SECRET"),                                // secret used for signing tokens
		TokenTTL:   envDuration("TOKEN_TTL", DefaultTokenTTL),         // token lifetime
		BcryptCost: envInt("BCRYPT_COST", DefaultBcryptCost),          // bcrypt cost factor
		CookieName: envDefault("AUTH_COOKIE_NAME", DefaultCookieName), // session cookie name
		Admins:     loadAdmins(),                                      // numbered credential slots
	}
}

// loadAdmins collects administrator credentials from numbered environment
// slots: ADMIN_USERNAME_1 / ADMIN_PASSWORD_HASH_1, ADMIN_USERNAME_2 / ...
// Enumeration stops at the first slot without a username, so slots must be
// contiguous.  A slot whose hash variable is unset still produces a record
// (with an empty hash) so that CredentialRepo can reject it by name at
// startup instead of the account silently not existing.
func loadAdmins() []model.Credential {
	var admins []model.Credential
	for i := 1; ; i++ {
		name := os.Getenv(fmt.Sprintf("ADMIN_USERNAME_%d", i))
		if name == "" {
			break
		}
		admins = append(admins, model.Credential{
			Username:     name,
			PasswordHash: os.Getenv(fmt.Sprintf("ADMIN_PASSWORD_HASH_%d", i)),
			Role:         model.RoleAdmin,
		})
	}
	return admins
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

// envDefault returns the variable's value, or def when unset or empty.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an optional integer variable.  An unset variable yields the
// default; a set but unparsable one is a configuration mistake and fatal.
func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envDuration reads an optional duration variable in Go syntax ("24h",
// "90m").  An unset variable yields the default; garbage is fatal.
func envDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, s)
	}
	return d
}
