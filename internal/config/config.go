package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// DB is the persistence adapter configuration. For sqlite, Name is the
// database file path.
type DB struct {
	Driver   string `env:"DRIVER" envDefault:"postgres"`
	Name     string `env:"NAME"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DB DB `envPrefix:"LIB_DB_"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"5m"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	LoanVerifyBook   bool   `env:"LOAN_VERIFY_BOOK" envDefault:"false"`
	OverdueSweepSpec string `env:"OVERDUE_SWEEP_SPEC" envDefault:"@every 5m"`
	SeedDefaultUsers bool   `env:"SEED_DEFAULT_USERS" envDefault:"true"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// FromMap parses c from vars instead of the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	c := &Config{}
	if err := env.ParseWithOptions(c, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if err := c.DB.Validate(); err != nil {
		return err
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 bytes")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL %s", c.TokenTTL)
	}
	if c.IdempotencyTTL <= 0 {
		return fmt.Errorf("invalid IDEMPOTENCY_TTL %s", c.IdempotencyTTL)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid LOG_FORMAT %q (text|json)", c.LogFormat)
	}
	if strings.TrimSpace(c.OverdueSweepSpec) == "" {
		return errors.New("missing OVERDUE_SWEEP_SPEC")
	}
	return nil
}

func (d *DB) Validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Name == "" {
			return errors.New("missing LIB_DB_NAME (sqlite file path)")
		}
		return nil
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported LIB_DB_DRIVER %q", d.Driver)
	}
	if d.Name == "" || d.User == "" || d.Password == "" || d.Host == "" || d.Port == "" {
		return errors.New("missing database config (LIB_DB_NAME/USER/PASSWORD/HOST/PORT)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", d.Port); err != nil {
		return fmt.Errorf("invalid LIB_DB_PORT %q: %w", d.Port, err)
	}
	return nil
}

func (d *DB) addr() string { return net.JoinHostPort(d.Host, d.Port) }

func (d *DB) DSN() string {
	switch d.Driver {
	case DriverMySQL:
		// parseTime needed for DATETIME
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
			d.User, d.Password, d.addr(), d.Name)
	case DriverSQLite:
		return d.Name
	default:
		q := url.Values{"TimeZone": {"UTC"}}
		if d.SSLMode != "" {
			q.Set("sslmode", d.SSLMode)
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     d.addr(),
			Path:     "/" + d.Name,
			RawQuery: q.Encode(),
		}
		return u.String()
	}
}

// RedisEnabled reports whether idempotency and distributed locks are on.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }
