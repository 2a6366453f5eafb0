package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the route optimizer.
//
// Values come from the environment (a .env file is loaded first), then from an optional
// YAML file named by ODYSSEY_CONFIG_FILE, then from built-in defaults.
type Config struct {
	Env            string         // Env is the current environment: local, development, production.
	Port           int            // Port is the HTTP server port.
	ProviderType   string         // ProviderType specifies which geocoding provider to use.
	APIKey         string         // APIKey for the geocoding provider (required for Google and Visicom).
	RateLimit      int            // RateLimit is the total provider request budget per second.
	GeocodeTimeout time.Duration  // GeocodeTimeout bounds a single provider request.
	Language       string         // Language requested from providers that support it.
	Workers        int            // Workers is the number of concurrent geocoding workers.
	AddrPrefix     string         // Address prefix for more accurate geocoding
	MaxStops       int            // MaxStops is the largest number of resolved stops the solver accepts.
	RedisURL       string         // RedisURL enables the shared geocoding cache when set.
	CacheTTL       time.Duration  // CacheTTL is how long geocoding results are cached.
	Database       PostgresConfig // Database holds the postgres database configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Enabled reports whether a database host is configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// bindings maps configuration keys to their environment variables and defaults.
var bindings = []struct {
	key, env string
	def      any
}{
	{"env", "ODYSSEY_ENV", "production"},
	{"server.port", "ODYSSEY_PORT", "8080"},
	{"provider.type", "ODYSSEY_PROVIDER_TYPE", "google"},
	{"provider.key", "ODYSSEY_PROVIDER_KEY", ""},
	{"provider.rate_limit", "ODYSSEY_RATE_LIMIT", "50"},
	{"provider.timeout", "ODYSSEY_GEOCODE_TIMEOUT", "10s"},
	{"provider.language", "ODYSSEY_PROVIDER_LANGUAGE", ""},
	{"geocoder.workers", "ODYSSEY_WORKERS", "10"},
	{"geocoder.address_prefix", "ODYSSEY_ADDRESS_PREFIX", ""},
	{"solver.max_stops", "ODYSSEY_MAX_STOPS", "16"},
	{"cache.redis_url", "REDIS_URL", ""},
	{"cache.ttl", "ODYSSEY_CACHE_TTL", "24h"},
	{"postgres.host", "DB_HOST", ""},
	{"postgres.port", "DB_PORT", "5432"},
	{"postgres.user", "DB_USERNAME", ""},
	{"postgres.password", "DB_PASSWORD", ""},
	{"postgres.db_name", "DB_NAME", ""},
}

// MustLoad loads the configuration and panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		_ = v.BindEnv(b.key, b.env)
	}

	if file, ok := os.LookupEnv("ODYSSEY_CONFIG_FILE"); ok && file != "" {
		v.SetConfigFile(file)
		if filepath.Ext(file) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := strconv.Atoi(v.GetString("server.port"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("geocoder.workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}

	rateLimit, err := strconv.Atoi(v.GetString("provider.rate_limit"))
	if err != nil {
		panic("failed to parse rate limit from configuration, must be an integer types")
	}

	maxStops, err := strconv.Atoi(v.GetString("solver.max_stops"))
	if err != nil {
		panic("failed to parse max stops from configuration, must be an integer types")
	}

	timeout, err := time.ParseDuration(v.GetString("provider.timeout"))
	if err != nil {
		panic("failed to parse geocode timeout from configuration")
	}

	cacheTTL, err := time.ParseDuration(v.GetString("cache.ttl"))
	if err != nil {
		panic("failed to parse cache ttl from configuration")
	}

	return &Config{
		Env:            v.GetString("env"),
		Port:           port,
		ProviderType:   v.GetString("provider.type"),
		APIKey:         v.GetString("provider.key"),
		RateLimit:      rateLimit,
		GeocodeTimeout: timeout,
		Language:       v.GetString("provider.language"),
		Workers:        workers,
		AddrPrefix:     v.GetString("geocoder.address_prefix"),
		MaxStops:       maxStops,
		RedisURL:       v.GetString("cache.redis_url"),
		CacheTTL:       cacheTTL,
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}
