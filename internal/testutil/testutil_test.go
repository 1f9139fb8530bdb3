package testutil

import (
	"strings"
	"testing"
)

func TestNewTestDSN(t *testing.T) {
	dsn := NewTestDSN("TestName")
	if !strings.Contains(dsn, "file:TestName?mode=memory&cache=shared") {
		t.Errorf("NewTestDSN did not generate expected DSN, got: %s", dsn)
	}
	if !strings.Contains(dsn, "_pragma=foreign_keys(1)") {
		t.Errorf("NewTestDSN did not enable foreign keys, got: %s", dsn)
	}
}

func TestSetupTestDB(t *testing.T) {
	ds, cleanup := SetupTestDB(t, "TestSetupTestDB")
	defer cleanup()

	if ds == nil {
		t.Fatal("Expected non-nil datastore")
	}

	if err := ds.DB.Ping(); err != nil {
		t.Errorf("Database ping failed: %v", err)
	}

	var count int
	if err := ds.DB.QueryRow("SELECT COUNT(*) FROM patients").Scan(&count); err != nil {
		t.Fatalf("Failed to count patients: %v", err)
	}
	if count != 5 {
		t.Errorf("Expected 5 seeded patients, got %d", count)
	}
}

func TestSetupEmptyTestDB(t *testing.T) {
	ds, cleanup := SetupEmptyTestDB(t, "TestSetupEmptyTestDB")
	defer cleanup()

	tables := []string{"patients", "staffs", "departments", "appointments", "medical_records"}
	for _, table := range tables {
		var count int
		if err := ds.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("Error checking table %s: %v", table, err)
			continue
		}
		if count != 0 {
			t.Errorf("Expected table %s to be empty, got %d rows", table, count)
		}
	}
}

func TestSetupTestDB_MultipleInstances(t *testing.T) {
	ds1, cleanup1 := SetupEmptyTestDB(t, "TestSetupTestDB_MultipleInstances_1")
	defer cleanup1()

	ds2, cleanup2 := SetupEmptyTestDB(t, "TestSetupTestDB_MultipleInstances_2")
	defer cleanup2()

	if _, err := ds1.DB.Exec("INSERT INTO departments (name) VALUES ('Pediatria')"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	var count int
	if err := ds2.DB.QueryRow("SELECT COUNT(*) FROM departments").Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected second database to be independent, got %d rows", count)
	}
}

func TestCleanupTestDB(t *testing.T) {
	if err := CleanupTestDB(NewTestDSN("test-cleanup")); err != nil {
		t.Errorf("CleanupTestDB should not error on in-memory database: %v", err)
	}

	if err := CleanupTestDB("invalid-dsn"); err == nil {
		t.Error("Expected error for invalid DSN")
	}

	// Multiple cleanup calls of a missing file are safe
	dsn := "file:" + t.TempDir() + "/missing.db"
	for i := 0; i < 3; i++ {
		if err := CleanupTestDB(dsn); err != nil {
			t.Errorf("Cleanup call %d failed: %v", i+1, err)
		}
	}
}

func TestNewBufferLogger(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Error().Str("op", "add").Msg("boom")

	if !strings.Contains(buf.String(), `"op":"add"`) {
		t.Errorf("Expected structured field in log output, got: %s", buf.String())
	}
}
