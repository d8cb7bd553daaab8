package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends accepted by SHELF_STORE.
const (
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// DefaultCatalogURL is the public book catalog the board was built around.
const DefaultCatalogURL = "https://keligmartin.github.io/api/books.json"

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Persistence
	Store      string // redis | sqlite | memory
	SQLitePath string // database file when Store == sqlite

	// Catalog
	CatalogURL            string        // remote JSON catalog, empty disables it
	CatalogTimeout        time.Duration // per-request timeout for the catalog fetch
	CatalogFile           string        // optional YAML seed catalog
	CatalogReloadInterval time.Duration // periodic catalog refresh
	CatalogCacheTTL       time.Duration // max age of the persisted catalog snapshot used as fallback
	GCInterval            time.Duration // orphaned feedback sweep interval

	// Redis
	RedisAddr             string
	RedisUser             string
	RedisPassword         string
	RedisPasswordRequired bool
	RedisDB               int
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between connect retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt
	RedisPoolSize         int
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries, doubles each attempt
	RedisWarnThreshold    int           // warn for this many attempts, then log errors

	// Access
	AllowedHosts []string // optional Host header allow-list
	AllowedCIDRS []string // optional client IP allow-list
	TrustProxy   bool     // resolve client IP from proxy headers
	RateBurst    int      // token bucket size for mutating routes
	RatePerMin   int      // tokens refilled per client per minute
}

func Load() *Config {
	cfg := &Config{
		ListenPort:      getenv("SHELF_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SHELF_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("SHELF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SHELF_PRETTY_LOG", true),

		Store:      strings.ToLower(getenv("SHELF_STORE", StoreRedis)),
		SQLitePath: getenv("SHELF_SQLITE_PATH", "/data/shelf.db"),

		CatalogURL:            getenv("SHELF_CATALOG_URL", DefaultCatalogURL),
		CatalogTimeout:        mustDuration("SHELF_CATALOG_TIMEOUT", 10*time.Second),
		CatalogFile:           getenv("SHELF_CATALOG_FILE", ""),
		CatalogReloadInterval: mustDuration("SHELF_CATALOG_RELOAD_INTERVAL", 6*time.Hour),
		CatalogCacheTTL:       mustDuration("SHELF_CATALOG_CACHE_TTL", 7*24*time.Hour),
		GCInterval:            mustDuration("SHELF_GC_INTERVAL", 24*time.Hour),

		RedisUser:             getenv("SHELF_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SHELF_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SHELF_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SHELF_REDIS_DB", 0),
		RedisDT:               mustDuration("SHELF_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("SHELF_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("SHELF_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("SHELF_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("SHELF_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("SHELF_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("SHELF_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("SHELF_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("SHELF_REDIS_WARN_THRESHOLD", 3),

		AllowedHosts: splitAndTrim(getenv("SHELF_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("SHELF_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SHELF_TRUST_PROXY", false),
		RateBurst:    getenvInt("SHELF_RATE_BURST", 30),
		RatePerMin:   getenvInt("SHELF_RATE_PER_MIN", 120),
	}

	switch cfg.Store {
	case StoreRedis:
		cfg.RedisAddr = requireEnv("SHELF_REDIS_ADDR")
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: SHELF_REDIS_PASSWORD is required when SHELF_REDIS_PASSWORD_REQUIRED=true")
		}
	case StoreSQLite:
		if cfg.SQLitePath == "" {
			panic("❌ FATAL: SHELF_SQLITE_PATH must not be empty when SHELF_STORE=sqlite")
		}
	case StoreMemory:
	default:
		panic(fmt.Sprintf("❌ FATAL: unknown SHELF_STORE %q (want redis, sqlite or memory)", cfg.Store))
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// splitAndTrim splits a comma list, dropping blanks and surrounding quotes.
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
