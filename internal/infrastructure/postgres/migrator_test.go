package postgres

import "testing"

func TestRunMigrationsMissingSource(t *testing.T) {
	err := RunMigrations("postgres://invalid:5432/db?sslmode=disable", t.TempDir()+"/missing")
	if err == nil {
		t.Fatalf("expected error for missing migrations directory")
	}
}

func TestRunMigrationsDownMissingSource(t *testing.T) {
	err := RunMigrationsDown("postgres://invalid:5432/db?sslmode=disable", t.TempDir()+"/missing")
	if err == nil {
		t.Fatalf("expected error for missing migrations directory")
	}
}
