package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jbweber/homelab/clinic/internal/datastore"
	"github.com/rs/zerolog"
)

// CleanupTestDB removes the test database file. In-memory databases and
// files that are already gone are ignored.
func CleanupTestDB(dsn string) error {
	if len(dsn) < 5 || dsn[:5] != "file:" {
		return fmt.Errorf("invalid DSN format")
	}

	path, query, _ := strings.Cut(dsn[5:], "?")
	if strings.Contains(query, "mode=memory") {
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SetupTestDB creates a migrated, seeded in-memory datastore
func SetupTestDB(t *testing.T, testName string) (*datastore.Datastore, func()) {
	return setup(t, testName, true)
}

// SetupEmptyTestDB creates a migrated in-memory datastore without seed rows
func SetupEmptyTestDB(t *testing.T, testName string) (*datastore.Datastore, func()) {
	return setup(t, testName, false)
}

func setup(t *testing.T, testName string, seed bool) (*datastore.Datastore, func()) {
	t.Helper()
	dsn := NewTestDSN(testName)

	// One connection keeps the shared in-memory database alive and avoids
	// shared-cache table locks between pooled connections.
	ds, err := datastore.Open(context.Background(), dsn, datastore.Options{Seed: seed, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Failed to open test datastore: %v", err)
	}

	cleanup := func() {
		ds.Close()
		CleanupTestDB(dsn)
	}

	return ds, cleanup
}

// NewBufferLogger returns a JSON logger writing to the returned buffer
func NewBufferLogger() (zerolog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return zerolog.New(buf).With().Timestamp().Logger(), buf
}
