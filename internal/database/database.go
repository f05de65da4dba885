package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and brings the schema up to date with the migrations in
// migrationsDir. The returned teardown closes the connection.
func InitDB(dbPath string, primaryUrl string, authToken string, migrationsDir string) (*sql.DB, func(), error) {
	db, err := open(dbPath, primaryUrl, authToken)
	if err != nil {
		return nil, nil, err
	}
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if err := migrate(db, migrationsDir); err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func open(dbPath string, primaryUrl string, authToken string) (*sql.DB, error) {
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// Every connection to :memory: is its own database.
		if dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory") {
			db.SetMaxOpenConns(1)
		}
		// Foreign key support is not enabled by default in SQLite
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return db, nil
	}

	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	return db, nil
}

func migrate(db *sql.DB, dir string) error {
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, dir)
}

// gooseLogger routes migration output through the application logger.
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...interface{}) { log.Fatalf(format, v...) }
func (gooseLogger) Printf(format string, v ...interface{}) {
	log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
