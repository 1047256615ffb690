package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gigmarket/backend/internal/config"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// sql.DB driver names registered by the imported drivers
	pgxDriverName = "pgx"

	DuplicateEntry       = 1062
	pgUniqueViolation    = "23505"
	sqliteUniqueViolated = 2067
	sqlitePKViolated     = 1555
)

//go:embed migrations/*.sql
var migrations embed.FS

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

func New(cfg config.Database) (*sqlx.DB, error) {
	var (
		dbConn *sqlx.DB
		err    error
	)

	switch cfg.Driver {
	case DriverMySQL, "":
		dbConn, err = newMySQL(cfg)
	case DriverPostgres:
		dbConn, err = sqlx.Connect(pgxDriverName, postgresDSN(cfg))
	case DriverSQLite:
		dbConn, err = NewSQLite(cfg.DBName)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("db connection failed: %w", err)
	}

	if cfg.Driver != DriverSQLite {
		dbConn.SetMaxIdleConns(cfg.MaxIdleConnections)
		dbConn.SetMaxOpenConns(cfg.MaxOpenConnections)
	}

	if err := dbConn.Ping(); err != nil {
		return nil, err
	}

	return dbConn, nil
}

func newMySQL(cfg config.Database) (*sqlx.DB, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time load location failed: %w", err)
	}
	conf := mysql.NewConfig()
	conf.Net = cfg.Net
	conf.Addr = cfg.Server
	conf.User = cfg.User
	conf.Passwd = cfg.Password
	conf.DBName = cfg.DBName
	conf.Timeout = cfg.Timeout
	conf.Loc = location
	conf.ParseTime = true

	return sqlx.Connect(DriverMySQL, conf.FormatDSN())
}

func postgresDSN(cfg config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Server,
		Path:   "/" + cfg.DBName,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	q.Set("connect_timeout", fmt.Sprintf("%d", int(cfg.Timeout.Seconds())))
	if cfg.TimeZone != "" {
		q.Set("timezone", cfg.TimeZone)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// NewSQLite opens a single-connection sqlite database. A single connection
// serializes writers, which is what gives sqlite read-modify-write isolation.
func NewSQLite(path string) (*sqlx.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
	dbConn, err := sqlx.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, err
	}
	dbConn.SetMaxOpenConns(1)
	return dbConn, nil
}

// ForUpdate returns the row lock clause supported by the connection's driver.
func ForUpdate(dbConn *sqlx.DB) string {
	if dbConn.DriverName() == DriverSQLite {
		return ""
	}
	return " FOR UPDATE"
}

// IsDuplicateEntry reports whether err is a unique constraint violation on any supported driver.
func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == DuplicateEntry
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqliteUniqueViolated || sqliteErr.Code() == sqlitePKViolated
	}
	return false
}

// Migrate applies the embedded schema for the connection's driver. Statements are idempotent.
func Migrate(ctx context.Context, dbConn *sqlx.DB) error {
	name := dbConn.DriverName()
	if name == pgxDriverName {
		name = DriverPostgres
	}

	schema, err := migrations.ReadFile("migrations/" + name + ".sql")
	if err != nil {
		return fmt.Errorf("read %s schema: %w", name, err)
	}

	for _, stmt := range strings.Split(string(schema), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := dbConn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}

	return nil
}
