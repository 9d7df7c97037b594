package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects SQL flavour differences (placeholders, row locking).
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LockClause is appended to a SELECT that precedes an UPDATE in the same
// transaction. SQLite locks the whole database on write instead.
func (d Dialect) LockClause() string {
	if d == DialectPostgres {
		return " FOR UPDATE"
	}
	return ""
}

// Target is a parsed DATABASE_URL.
type Target struct {
	Driver  string
	DSN     string
	Dialect Dialect
	// Host is safe to log; it never contains credentials.
	Host string
}

// ParseURL maps a connection URL onto a registered database/sql driver.
// postgresDriver is "postgres" (lib/pq) or "pgx".
func ParseURL(raw, postgresDriver string) (Target, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Target{}, fmt.Errorf("invalid postgres URL: %w", redactURLError(err))
		}
		driver := postgresDriver
		switch driver {
		case "", "postgres", "pq":
			driver = "postgres"
		case "pgx":
		default:
			return Target{}, fmt.Errorf("unknown postgres driver %q (want postgres or pgx)", postgresDriver)
		}
		return Target{Driver: driver, DSN: raw, Dialect: DialectPostgres, Host: u.Host}, nil

	case strings.HasPrefix(raw, "sqlite:"), strings.HasPrefix(raw, "file:"):
		path := strings.TrimPrefix(strings.TrimPrefix(raw, "sqlite://"), "sqlite:")
		if path == "" {
			return Target{}, fmt.Errorf("sqlite URL %q has no database path", raw)
		}
		dsn := path
		if !strings.Contains(dsn, "_pragma=busy_timeout") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=busy_timeout(5000)"
		}
		host := path
		if i := strings.Index(host, "?"); i >= 0 {
			host = host[:i]
		}
		return Target{Driver: "sqlite", DSN: dsn, Dialect: DialectSQLite, Host: host}, nil

	case strings.HasPrefix(raw, "mysql://"):
		return Target{}, fmt.Errorf("mysql is not supported; use a postgres:// or sqlite:// DATABASE_URL")
	}
	return Target{}, fmt.Errorf("unsupported database URL scheme in %q", Redact(raw))
}

// redactURLError drops the URL from url.Error so passwords never reach logs.
func redactURLError(err error) error {
	if uerr, ok := err.(*url.Error); ok {
		return uerr.Err
	}
	return err
}

// dsnPassword matches the password of a key=value DSN, quoted or bare.
var dsnPassword = regexp.MustCompile(`(?i)(\bpassword\s*=\s*)('(?:[^'\\]|\\.)*'|[^\s]+)`)

// Redact masks the password in a connection URL or key=value DSN.
func Redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		if i := strings.Index(raw, "://"); i >= 0 {
			return raw[:i+3] + "…"
		}
		return dsnPassword.ReplaceAllString(raw, "${1}xxxxx")
	}
	if q := u.Query(); q.Has("password") {
		q.Set("password", "xxxxx")
		u.RawQuery = q.Encode()
	}
	return u.Redacted()
}

type Options struct {
	URL             string
	PostgresDriver  string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

type Database struct {
	*sql.DB
	Dialect Dialect
	Target  Target
}

// New opens and pings the database. It fails rather than returning a
// handle that is not reachable.
func New(ctx context.Context, opts Options) (*Database, error) {
	target, err := ParseURL(opts.URL, opts.PostgresDriver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database at %s: %w", target.Dialect, target.Host, err)
	}

	if target.Dialect == DialectSQLite {
		// One writer at a time; avoids SQLITE_BUSY between pooled connections.
		conn.SetMaxOpenConns(1)
	} else {
		if opts.MaxOpenConns > 0 {
			conn.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if opts.MaxIdleConns > 0 {
			conn.SetMaxIdleConns(opts.MaxIdleConns)
		}
	}
	if opts.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database at %s: %w", target.Dialect, target.Host, err)
	}

	return &Database{DB: conn, Dialect: target.Dialect, Target: target}, nil
}

func (db *Database) Close() error {
	return db.DB.Close()
}
