package config

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	passwordvalidator "github.com/wagslane/go-password-validator"

	"github.com/talx-hub/gopher-loyalty/internal/model"
)

// minSecretEntropyBits is the weakest JWT signing key accepted.
const minSecretEntropyBits = 50

type Config struct {
	location         *time.Location
	RunAddr          string        `env:"RUN_ADDRESS"        envDefault:"localhost:8080"`
	DatabaseURI      string        `env:"DATABASE_URI"       envDefault:""`
	SecretKey        string        `env:"SECRET_KEY"         envDefault:""`
	LogLevel         string        `env:"LOG_LEVEL"          envDefault:"info"`
	Timezone         string        `env:"TIMEZONE"           envDefault:"UTC"`
	IssueTokenFor    string
	LockTimeout      time.Duration `env:"LOCK_TIMEOUT"       envDefault:"2s"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL"     envDefault:"1h"`
	LockAttempts     int           `env:"LOCK_ATTEMPTS"      envDefault:"3"`
	SweepWorkers     int           `env:"SWEEP_WORKERS"      envDefault:"0"`
	SweepMaxInFlight uint64        `env:"SWEEP_MAX_INFLIGHT" envDefault:"64"`
}

// Location is the zone calendar windows are computed in. It is set by
// Builder.Validate.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

type Builder struct {
	cfg *Config
	log *slog.Logger
	err error
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{
		cfg: &Config{
			RunAddr:          "",
			DatabaseURI:      "",
			SecretKey:        "",
			LogLevel:         "",
			Timezone:         "",
			LockTimeout:      model.DefaultLockTimeout,
			LockAttempts:     model.DefaultLockAttempts,
			SweepMaxInFlight: model.DefaultSweepInFlight,
		},
		log: log,
	}
}

// FromDotEnv loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func (b *Builder) FromDotEnv(path string) *Builder {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return b
	}
	if err := godotenv.Load(path); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "Failed to load dotenv file",
			slog.String("path", path),
			slog.Any(model.KeyLoggerError, err))
		b.err = errors.Join(b.err, fmt.Errorf("dotenv %s: %w", path, err))
	}
	return b
}

func (b *Builder) FromEnv() *Builder {
	if err := env.Parse(b.cfg); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "Failed to parse config", slog.Any(model.KeyLoggerError, err))
		b.err = errors.Join(b.err, fmt.Errorf("env: %w", err))
	}
	return b
}

func (b *Builder) FromFlags() *Builder {
	return b.FromArgs(os.Args[1:])
}

func (b *Builder) FromArgs(args []string) *Builder {
	fs := flag.NewFlagSet("loyalty", flag.ContinueOnError)
	fs.StringVar(&b.cfg.RunAddr, "a", b.cfg.RunAddr, "Run address")
	fs.StringVar(&b.cfg.DatabaseURI, "d", b.cfg.DatabaseURI, "Database URI, empty for in-memory storage")
	fs.StringVar(&b.cfg.SecretKey, "k", b.cfg.SecretKey, "Secret key")
	fs.StringVar(&b.cfg.LogLevel, "l", b.cfg.LogLevel, "Log level")
	fs.StringVar(&b.cfg.Timezone, "tz", b.cfg.Timezone, "Timezone of calendar windows")
	fs.DurationVar(&b.cfg.LockTimeout, "lock-timeout", b.cfg.LockTimeout, "Account lock wait")
	fs.IntVar(&b.cfg.LockAttempts, "lock-attempts", b.cfg.LockAttempts, "Attempts on a busy account")
	fs.DurationVar(&b.cfg.SweepInterval, "sweep-interval", b.cfg.SweepInterval, "Sweep interval, 0 disables")
	fs.IntVar(&b.cfg.SweepWorkers, "sweep-workers", b.cfg.SweepWorkers, "Sweep workers, 0 for default")
	fs.Uint64Var(&b.cfg.SweepMaxInFlight, "sweep-max-inflight", b.cfg.SweepMaxInFlight,
		"Sweep jobs running at once")
	fs.StringVar(&b.cfg.IssueTokenFor, "t", b.cfg.IssueTokenFor, "Print a token for the tenant and exit")

	if err := fs.Parse(args); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("flags: %w", err))
	}
	return b
}

// Validate checks the assembled config and resolves the timezone.
func (b *Builder) Validate() *Builder {
	var errs []error
	if err := passwordvalidator.Validate(b.cfg.SecretKey, minSecretEntropyBits); err != nil {
		errs = append(errs, fmt.Errorf("SECRET_KEY: %w", err))
	}
	if b.cfg.LockTimeout <= 0 {
		errs = append(errs, errors.New("LOCK_TIMEOUT must be positive"))
	}
	if b.cfg.LockAttempts <= 0 {
		errs = append(errs, errors.New("LOCK_ATTEMPTS must be positive"))
	}
	if b.cfg.SweepWorkers < 0 {
		errs = append(errs, errors.New("SWEEP_WORKERS must not be negative"))
	}
	if b.cfg.SweepMaxInFlight == 0 {
		errs = append(errs, errors.New("SWEEP_MAX_INFLIGHT must be positive"))
	}
	loc, err := time.LoadLocation(b.cfg.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	} else {
		b.cfg.location = loc
	}

	if err = errors.Join(errs...); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "Invalid config", slog.Any(model.KeyLoggerError, err))
		b.err = errors.Join(b.err, err)
	}
	return b
}

func (b *Builder) Error() error {
	return b.err
}

func (b *Builder) GetConfig() *Config {
	return b.cfg
}
