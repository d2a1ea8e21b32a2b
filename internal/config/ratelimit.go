package config

import (
	"os"
	"time"
)

// RateLimitConfig tunes the token-bucket limiter applied to the login route.
// Limiting is keyed by client IP: login requests carry no identity yet, so
// the address is the only stable discriminator.  The defaults allow a small
// burst of attempts and then one attempt per refill interval, which is ample
// for a human operator and hostile to password guessing.
type RateLimitConfig struct {
	Enabled        bool          // master switch; also off when Redis is absent
	Capacity       int           // bucket size (burst allowance)
	RefillTokens   int           // tokens added per interval
	RefillInterval time.Duration // refill cadence
	TTL            time.Duration // bucket key expiry in Redis
	Prefix         string        // Redis key prefix
	Debug          bool          // emit limiter diagnostics on the echo logger
}

// LoadRateLimitConfig reads limiter settings from the environment, applying
// defaults and clamping nonsensical values into a usable range.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 5),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDuration("RATE_LIMIT_REFILL_INTERVAL", 10*time.Second),
		TTL:            envDuration("RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         envDefault("RATE_LIMIT_PREFIX", "rl:login"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	// A bucket that expires faster than it refills would reset itself.
	if minTTL := 5 * cfg.RefillInterval; cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}
