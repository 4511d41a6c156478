// Package config loads the service settings from the environment.
//
// A .env file in the working directory is applied first (existing variables
// win), then every field is read with its documented default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig    `env-prefix:"APP_"`
	DB     DBConfig
	Backup BackupConfig `env-prefix:"BACKUP_"`
	Bucket BucketConfig `env-prefix:"BUCKET_"`
}

type AppConfig struct {
	Port         string        `env:"PORT" env-default:"8000"`
	Timezone     string        `env:"TIMEZONE" env-default:"America/Lima"`
	LogLevel     string        `env:"LOG_LEVEL" env-default:"info"`
	Roster       []string      `env:"ROSTER" env-separator:"," env-default:"Morris Larrañaga Policarpio,Saucedo Abad Florencio,Rojas Gutierrez Hermes,Paciffico Valles Publio Salvador,Noronha Gomez Joao Andre,Jhean Marco Guerra Vasquez,Reategui Vasquez Javier"`
	RateLimit    float64       `env:"RATE_LIMIT" env-default:"10"`
	RateBurst    int           `env:"RATE_BURST" env-default:"20"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" env-default:"60s"`
}

// DBConfig keeps the PG* names used by libpq tooling.
type DBConfig struct {
	Driver       string `env:"DB_DRIVER" env-default:"sqlite"`
	Path         string `env:"DB_PATH" env-default:"choferes.db"`
	Host         string `env:"PGHOST" env-default:"localhost"`
	Port         int    `env:"PGPORT" env-default:"5432"`
	User         string `env:"PGUSER" env-default:"postgres"`
	Password     string `env:"PGPASSWORD" env-default:"postgres"`
	Name         string `env:"PGDATABASE" env-default:"choferes"`
	SSLMode      string `env:"PGSSLMODE" env-default:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
}

type BackupConfig struct {
	CSVPath     string `env:"CSV_PATH" env-default:"backup_choferes.csv"`
	SnapshotDir string `env:"SNAPSHOT_DIR" env-default:"backups"`
}

type BucketConfig struct {
	Enabled         bool   `env:"ENABLED" env-default:"false"`
	Name            string `env:"NAME" env-default:"choferes-backups"`
	Endpoint        string `env:"ENDPOINT" env-default:""`
	AccessKeyID     string `env:"ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY" env-default:""`
	Region          string `env:"REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE" env-default:"true"`
	Prefix          string `env:"PREFIX" env-default:"choferes"`
}

// Load applies envFile (when present) and reads the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load(): failed to read %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config.Load(): %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Bucket.Enabled && c.Bucket.Name == "" {
		return errors.New("config: BUCKET_NAME is required when BUCKET_ENABLED is set")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return ":" + a.Port
}
