package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jbweber/homelab/clinic/internal/migrations"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// connPragmas are applied by the driver to every new connection. Foreign
// keys are per connection in SQLite, so a one-off PRAGMA is not enough.
// _time_format=sqlite writes times as "2006-01-02 15:04:05.999999999-07:00",
// which the driver parses back whatever the zone.
var connPragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_time_format=sqlite",
}

// Options controls how a Datastore is opened.
type Options struct {
	// Seed loads the fixed reference rows when the schema is first created.
	Seed bool
	// MaxOpenConns caps the pool; zero leaves the database/sql default.
	MaxOpenConns int
	// PrepareStatements makes gorm cache prepared statements.
	PrepareStatements bool
}

// Datastore is the storage engine: a migrated SQLite database and the gorm
// session the repositories run on.
type Datastore struct {
	DB   *sql.DB
	Gorm *gorm.DB
}

// DSN turns a database path (or an existing file: URI) into a DSN carrying
// the per-connection pragmas. Extra pragmas use the driver's form, e.g.
// "synchronous(NORMAL)".
func DSN(path string, pragmas ...string) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	params := append([]string{}, connPragmas...)
	for _, p := range pragmas {
		params = append(params, "_pragma="+p)
	}
	return dsn + sep + strings.Join(params, "&")
}

// IsMemory reports whether dsn names an in-memory database.
func IsMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Open opens the database at dsn, runs pending migrations and wraps the
// connection pool in a gorm session.
func Open(ctx context.Context, dsn string, opts Options) (*Datastore, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(ctx, db, opts.Seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	gdb, err := gorm.Open(&gormsqlite.Dialector{DriverName: DriverName, Conn: db}, &gorm.Config{
		// The repository logs failures itself; gorm would log them a second time.
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		PrepareStmt:            opts.PrepareStatements,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}
	if err := registerUTCTimes(gdb); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register time callbacks: %w", err)
	}

	return &Datastore{DB: db, Gorm: gdb}, nil
}

// migrate applies every registered migration that has not run yet.
func migrate(ctx context.Context, db *sql.DB, seed bool) error {
	migrator := migrations.NewMigrator(db)
	for _, migration := range migrations.All(seed) {
		migrator.AddMigration(migration)
	}
	return migrator.RunMigrations(ctx)
}

// SchemaVersion returns the highest applied migration version.
func (ds *Datastore) SchemaVersion(ctx context.Context) (int64, error) {
	return migrations.NewMigrator(ds.DB).GetCurrentVersion(ctx)
}

// Ping checks that the database is reachable.
func (ds *Datastore) Ping(ctx context.Context) error {
	return ds.DB.PingContext(ctx)
}

// ForeignKeysEnabled reports whether foreign key enforcement is on for a
// pooled connection.
func (ds *Datastore) ForeignKeysEnabled(ctx context.Context) (bool, error) {
	var enabled bool
	if err := ds.DB.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

// Close closes the connection pool.
func (ds *Datastore) Close() error {
	return ds.DB.Close()
}
