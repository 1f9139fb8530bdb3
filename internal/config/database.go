package config

import (
	"context"
	"database/sql"
	"time"
)

// ConnectionPragmas are SQLite settings that only last for one connection,
// so they travel in the DSN and the driver applies them to each new one.
func ConnectionPragmas() []string {
	return []string{
		"synchronous(NORMAL)",  // Balance between safety and performance
		"cache_size(-10000)",   // ~10MB page cache
		"temp_store(MEMORY)",   // Store temporary tables in memory
		"mmap_size(268435456)", // 256MB memory mapping
	}
}

// OptimizeDatabaseConnection applies performance optimizations to the database connection
func OptimizeDatabaseConnection(db *sql.DB) {
	db.SetMaxIdleConns(5)                  // Keep some connections alive
	db.SetConnMaxLifetime(5 * time.Minute) // Recycle connections periodically
	db.SetConnMaxIdleTime(1 * time.Minute) // Close idle connections after 1 minute
}

// ApplyPragmaOptimizations applies database-wide SQLite pragmas
func ApplyPragmaOptimizations(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL", // Write-Ahead Logging for better concurrency
		"PRAGMA optimize",           // Enable query optimizer
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return err
		}
	}

	return nil
}
