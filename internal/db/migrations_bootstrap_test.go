package db

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	embeddedmigrations "github.com/terraincognita07/datepick/migrations"
	"gorm.io/gorm"
)

func TestOpenSQLiteAppliesEmbeddedMigrationsOnCleanDatabase(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "datepick-clean.db"))

	assertPickerSessionsSchema(t, database)
	assertAllEmbeddedMigrationsApplied(t, database)
}

func TestOpenSQLiteUpgradesInitialSchema(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "datepick-initial.db")
	seedInitialSchema(t, databasePath)

	database := openSQLiteForTest(t, databasePath)
	assertPickerSessionsSchema(t, database)
	assertAllEmbeddedMigrationsApplied(t, database)

	var upgraded struct {
		Mode        string `gorm:"column:mode"`
		DateAdapter string `gorm:"column:date_adapter"`
	}
	if err := database.
		Table("picker_sessions").
		Select("mode", "date_adapter").
		Where("id = ?", "initial-session").
		First(&upgraded).Error; err != nil {
		t.Fatalf("load upgraded session: %v", err)
	}
	if upgraded.Mode != "range" {
		t.Fatalf("expected mode=range to survive the upgrade, got %q", upgraded.Mode)
	}
	if upgraded.DateAdapter != "time" {
		t.Fatalf("expected date_adapter default to be time, got %q", upgraded.DateAdapter)
	}
}

func TestOpenSQLiteMigrationBootstrapIsIdempotent(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "datepick-idempotent.db")

	firstOpen, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open sqlite: %v", err)
	}
	firstRecords := loadMigrationRecords(t, firstOpen)

	firstSQLDB, err := firstOpen.DB()
	if err != nil {
		t.Fatalf("first open sql db: %v", err)
	}
	if err := firstSQLDB.Close(); err != nil {
		t.Fatalf("close first sql db: %v", err)
	}

	secondOpen := openSQLiteForTest(t, databasePath)
	secondRecords := loadMigrationRecords(t, secondOpen)

	if !reflect.DeepEqual(firstRecords, secondRecords) {
		t.Fatalf("expected migration records to remain unchanged between boots, before=%v after=%v", firstRecords, secondRecords)
	}
}

func TestApplyMigrationsSkipsColumnsThatAlreadyExist(t *testing.T) {
	database := openRawSQLiteForTest(t, filepath.Join(t.TempDir(), "datepick-add-column.db"))

	files := fstest.MapFS{
		"0001_widgets.sql":       {Data: []byte(`CREATE TABLE widgets (id INTEGER PRIMARY KEY, label TEXT NOT NULL DEFAULT '')`)},
		"0002_widgets_label.sql": {Data: []byte(`ALTER TABLE widgets ADD COLUMN label TEXT NOT NULL DEFAULT ''; ALTER TABLE widgets ADD COLUMN color TEXT`)},
		"README.md":              {Data: []byte(`ignored`)},
	}
	if err := applyMigrations(database, files); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	columns := loadTableColumns(t, database, "widgets")
	for _, column := range []string{"id", "label", "color"} {
		if _, ok := columns[column]; !ok {
			t.Fatalf("expected widgets.%s to exist, got %v", column, columns)
		}
	}
	if records := loadMigrationRecords(t, database); len(records) != 2 {
		t.Fatalf("expected two recorded migrations, got %v", records)
	}
}

func TestApplyMigrationsRejectsDuplicateVersions(t *testing.T) {
	database := openRawSQLiteForTest(t, filepath.Join(t.TempDir(), "datepick-duplicate.db"))

	files := fstest.MapFS{
		"0001_a.sql": {Data: []byte(`CREATE TABLE a (id INTEGER)`)},
		"001_b.sql":  {Data: []byte(`CREATE TABLE b (id INTEGER)`)},
	}
	err := applyMigrations(database, files)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestApplyMigrationsRejectsEmptyMigration(t *testing.T) {
	database := openRawSQLiteForTest(t, filepath.Join(t.TempDir(), "datepick-empty.db"))

	files := fstest.MapFS{
		"0001_empty.sql": {Data: []byte(" ;\n ; ")},
	}
	if err := applyMigrations(database, files); !errors.Is(err, ErrEmptyMigration) {
		t.Fatalf("expected ErrEmptyMigration, got %v", err)
	}
}

func openSQLiteForTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	closeOnCleanup(t, database)
	return database
}

func openRawSQLiteForTest(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(sqliteDSN(databasePath)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open raw sqlite: %v", err)
	}
	closeOnCleanup(t, database)
	return database
}

func closeOnCleanup(t *testing.T, database *gorm.DB) {
	t.Helper()

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
}

func seedInitialSchema(t *testing.T, databasePath string) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(sqliteDSN(databasePath)), &gorm.Config{})
	if err != nil {
		t.Fatalf("open initial sqlite: %v", err)
	}

	initSQL, err := fs.ReadFile(embeddedmigrations.Files, "0001_create_picker_sessions.sql")
	if err != nil {
		t.Fatalf("read 0001 migration: %v", err)
	}
	for _, statement := range splitSQLStatements(string(initSQL)) {
		if err := database.Exec(statement).Error; err != nil {
			t.Fatalf("apply 0001 migration: %v", err)
		}
	}

	if err := database.Exec(
		`INSERT INTO picker_sessions (id, mode, displayed_date, created_at, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		"initial-session",
		"range",
		"2026-03-01",
	).Error; err != nil {
		t.Fatalf("insert initial session: %v", err)
	}

	if database.Migrator().HasTable("schema_migrations") {
		t.Fatal("expected initial schema to not have schema_migrations table")
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open initial sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close initial sql db: %v", err)
	}
}

func assertPickerSessionsSchema(t *testing.T, database *gorm.DB) {
	t.Helper()

	columns := loadTableColumns(t, database, "picker_sessions")
	expectedColumns := []string{
		"id", "mode", "week_start", "timezone", "language", "date_adapter",
		"displayed_date", "date", "start_date", "end_date", "min_date", "max_date",
		"controlled", "open", "selecting", "created_at", "updated_at",
	}
	for _, column := range expectedColumns {
		if _, exists := columns[column]; !exists {
			t.Fatalf("expected picker_sessions.%s column to exist after migrations", column)
		}
	}
}

func assertAllEmbeddedMigrationsApplied(t *testing.T, database *gorm.DB) {
	t.Helper()

	migrations, err := loadMigrations(embeddedmigrations.Files)
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	expectedVersions := make([]string, 0, len(migrations))
	for _, next := range migrations {
		expectedVersions = append(expectedVersions, next.Version)
	}

	actualVersions := make([]string, 0)
	for _, record := range loadMigrationRecords(t, database) {
		actualVersions = append(actualVersions, record.Version)
	}

	if !reflect.DeepEqual(expectedVersions, actualVersions) {
		t.Fatalf("unexpected applied migration versions: expected=%v actual=%v", expectedVersions, actualVersions)
	}
}

type migrationRecord struct {
	Version   string `gorm:"column:version"`
	Name      string `gorm:"column:name"`
	AppliedAt string `gorm:"column:applied_at"`
}

func loadMigrationRecords(t *testing.T, database *gorm.DB) []migrationRecord {
	t.Helper()

	records := make([]migrationRecord, 0)
	if err := database.Raw(
		`SELECT version, name, applied_at FROM schema_migrations ORDER BY version ASC`,
	).Scan(&records).Error; err != nil {
		t.Fatalf("load migration records: %v", err)
	}
	return records
}

func loadTableColumns(t *testing.T, database *gorm.DB, tableName string) map[string]struct{} {
	t.Helper()

	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(tableName, `"`, `""`))

	var rows []struct {
		Name string `gorm:"column:name"`
	}
	if err := database.Raw(query).Scan(&rows).Error; err != nil {
		t.Fatalf("load table columns for %s: %v", tableName, err)
	}

	columns := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		columns[strings.ToLower(strings.TrimSpace(row.Name))] = struct{}{}
	}
	return columns
}
