package config // package config loads application configuration from environment variables

import (
    "errors"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/caarlos0/env/v11"
    "github.com/joho/godotenv"
)

// Supported values for DB_DRIVER.
const (
    DriverMySQL  = "mysql"
    DriverSQLite = "sqlite"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  MySQL credentials are only required when
// DB_DRIVER is mysql; SQLITE_PATH is only read when it is sqlite.
type Config struct {
    Env          string        `env:"APP_ENV" envDefault:"dev"`       // application environment (dev/test/prod)
    Port         string        `env:"APP_PORT" envDefault:"5000"`     // HTTP port to listen on
    DBDriver     string        `env:"DB_DRIVER" envDefault:"mysql"`   // mysql or sqlite
    DBUser       string        `env:"DB_USER"`                        // database username
    DBPass       string        `env:"DB_PASS"`                        // database password (empty allowed)
    DBHost       string        `env:"DB_HOST"`                        // database host address
    DBPort       string        `env:"DB_PORT" envDefault:"3306"`      // database port number
    DBName       string        `env:"DB_NAME"`                        // database name
    SQLitePath   string        `env:"SQLITE_PATH" envDefault:"fyyur.db"`
    DBTimeout    time.Duration `env:"DB_TIMEOUT" envDefault:"5s"`     // upper bound for a request's database work
    FormSecret   string        `env:"FORM_SECRET,notEmpty"`           // secret used to sign form tokens
    FormTokenTTL time.Duration `env:"FORM_TOKEN_TTL" envDefault:"1h"` // lifetime of a rendered form
    LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration values from the environment and validates the
// combination of database settings.
func Load() (Config, error) {
    var cfg Config
    if err := env.Parse(&cfg); err != nil {
        return Config{}, fmt.Errorf("parse env: %w", err)
    }
    cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
    if err := cfg.validate(); err != nil {
        return Config{}, err
    }
    return cfg, nil
}

func (c Config) validate() error {
    switch c.DBDriver {
    case DriverMySQL:
        var missing []string
        for _, kv := range [][2]string{{"DB_USER", c.DBUser}, {"DB_HOST", c.DBHost}, {"DB_NAME", c.DBName}} {
            if kv[1] == "" {
                missing = append(missing, kv[0])
            }
        }
        if len(missing) > 0 {
            return fmt.Errorf("missing required env vars for mysql: %s", strings.Join(missing, ", "))
        }
    case DriverSQLite:
        if strings.TrimSpace(c.SQLitePath) == "" {
            return errors.New("SQLITE_PATH is required for sqlite")
        }
    default:
        return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
    }
    if c.DBTimeout <= 0 {
        return errors.New("DB_TIMEOUT must be positive")
    }
    if c.FormTokenTTL <= 0 {
        return errors.New("FORM_TOKEN_TTL must be positive")
    }
    return nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding values already present in the environment.  Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
    if len(paths) == 0 {
        paths = []string{".env"}
    }
    var existing []string
    for _, p := range paths {
        if _, err := os.Stat(p); err == nil {
            existing = append(existing, p)
        }
    }
    if len(existing) == 0 {
        return nil
    }
    return godotenv.Load(existing...)
}
