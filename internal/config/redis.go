package config

// This file defines the Redis client constructor.  Redis backs the
// distributed rate limiter on form submissions.  If the server cannot be
// reached during startup the constructor returns nil and callers degrade by
// disabling rate limiting.

import (
    "context"
    "crypto/tls"
    "net"
    "time"

    "github.com/caarlos0/env/v11"
    "github.com/redis/go-redis/v9"
)

// RedisConfig lists the supported variables:
//   REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//   REDIS_ADDR – host:port shorthand (host/port win when both are set)
//   REDIS_PASSWORD – optional password
//   REDIS_DB – database number (default 0)
//   REDIS_TLS – enable TLS, verifying the server certificate
//   REDIS_TLS_INSECURE – skip certificate verification (self-signed dev servers only)
type RedisConfig struct {
    Host     string `env:"REDIS_HOST"`
    Port     string `env:"REDIS_PORT"`
    Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
    Password string `env:"REDIS_PASSWORD"`
    DB       int    `env:"REDIS_DB" envDefault:"0"`
    TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
    Insecure bool   `env:"REDIS_TLS_INSECURE" envDefault:"false"`
}

func LoadRedisConfig() (RedisConfig, error) {
    var cfg RedisConfig
    if err := env.Parse(&cfg); err != nil {
        return RedisConfig{}, err
    }
    return cfg, nil
}

// address resolves the effective host:port.
func (c RedisConfig) address() string {
    if c.Host != "" && c.Port != "" {
        return c.Host + ":" + c.Port
    }
    if c.Addr == "" {
        return "localhost:6379"
    }
    return c.Addr
}

// tlsConfig returns nil when TLS is off.  The certificate is checked
// against the server host unless REDIS_TLS_INSECURE is set.
func (c RedisConfig) tlsConfig() *tls.Config {
    if !c.TLS {
        return nil
    }
    host, _, err := net.SplitHostPort(c.address())
    if err != nil {
        host = c.address()
    }
    return &tls.Config{
        ServerName:         host,
        MinVersion:         tls.VersionTLS12,
        InsecureSkipVerify: c.Insecure,
    }
}

// NewRedisClient instantiates a Redis client and pings it with a short
// timeout.  The returned client is nil if a connection cannot be
// established.
func NewRedisClient(cfg RedisConfig) *redis.Client {
    client := redis.NewClient(&redis.Options{
        Addr:      cfg.address(),
        Password:  cfg.Password,
        DB:        cfg.DB,
        TLSConfig: cfg.tlsConfig(),
    })
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}
