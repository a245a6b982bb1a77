package config

// RedisConfig contains Redis configuration for the session store.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
	// Enabled controls whether Redis is used at all. When false (or in
	// dev mode without a reachable Redis) sessions fall back to the
	// in-process store.
	Enabled bool `env:"ENABLED" envDefault:"true"`
}
