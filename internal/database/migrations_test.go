package database

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	expectedMigrations := []string{
		"00001_create_users_table.sql",
	}

	for _, migration := range expectedMigrations {
		if _, err := fs.Stat(migrationsFS, migrationsDir+"/"+migration); err != nil {
			t.Errorf("Migration file %s is not embedded: %v", migration, err)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read embedded migrations: %v", err)
	}

	sqlFileCount := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+entry.Name())
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", entry.Name(), err)
			continue
		}

		contentStr := string(content)
		for _, directive := range []string{
			"-- +goose Up",
			"-- +goose Down",
			"-- +goose StatementBegin",
			"-- +goose StatementEnd",
		} {
			if !strings.Contains(contentStr, directive) {
				t.Errorf("Migration file %s missing '%s' directive", entry.Name(), directive)
			}
		}
	}

	if sqlFileCount == 0 {
		t.Fatal("No migration files found")
	}
}

func TestUsersMigrationEnforcesUniqueEmail(t *testing.T) {
	content, err := fs.ReadFile(migrationsFS, migrationsDir+"/00001_create_users_table.sql")
	if err != nil {
		t.Fatalf("Failed to read users migration: %v", err)
	}

	if !strings.Contains(string(content), "UNIQUE (email)") {
		t.Error("users migration must declare a unique constraint on email")
	}
	if strings.Contains(strings.ToLower(string(content)), "lower(email)") {
		t.Error("emails must be compared exactly as stored")
	}
}
