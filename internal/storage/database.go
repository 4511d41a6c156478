package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour and driver behind a RecordStore.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

type DBConfig struct {
	Dialect      Dialect
	Path         string // sqlite file
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
}

// DSN builds the driver specific connection string.
func (c DBConfig) DSN() string {
	switch c.Dialect {
	case DialectPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.Host + ":" + strconv.Itoa(c.Port),
			Path:     "/" + c.Name,
			RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
		}
		return u.String()
	default:
		// writers wait for the file lock instead of failing with SQLITE_BUSY
		return c.Path + "?_pragma=busy_timeout(5000)"
	}
}

// OpenDB opens the connection pool and checks connectivity.
func OpenDB(ctx context.Context, cfg DBConfig, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open(string(cfg.Dialect), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("OpenDB(): failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenDB(): failed to connect to database: %w", err)
	}

	log.Info("OpenDB(): database connected",
		zap.String("dialect", string(cfg.Dialect)),
		zap.String("host", cfg.Host),
		zap.String("path", cfg.Path),
	)
	return db, nil
}

const createRegistrosSQLite = `
CREATE TABLE IF NOT EXISTS registros (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"driver_name" TEXT NOT NULL,
		"kind" TEXT NOT NULL,
		"destination" TEXT NOT NULL,
		"errand" TEXT NOT NULL,
		"justification" TEXT NOT NULL,
		"request_reason" TEXT NOT NULL,
		"responsible_party" TEXT NOT NULL,
		"event_timestamp" TEXT NOT NULL,
		"recorded_at" TEXT NOT NULL
);`

const createRegistrosPostgres = `
CREATE TABLE IF NOT EXISTS registros (
		id SERIAL PRIMARY KEY,
		driver_name TEXT NOT NULL,
		kind TEXT NOT NULL,
		destination TEXT NOT NULL,
		errand TEXT NOT NULL,
		justification TEXT NOT NULL,
		request_reason TEXT NOT NULL,
		responsible_party TEXT NOT NULL,
		event_timestamp TEXT NOT NULL,
		recorded_at TEXT NOT NULL
);`

// rebind rewrites ? placeholders as $1..$n for postgres.
func rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
