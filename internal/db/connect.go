package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DBTX is the read access the SQL trip source needs.
type DBTX interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}

type Database struct {
	db *sql.DB
}

func NewDatabaseConnection(ctx context.Context, domainStringName string) (*Database, error) {
	db, err := sql.Open("pgx", domainStringName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return &Database{db: db}, nil
}

// Wrap adapts an already opened handle, e.g. one backed by sqlmock.
func Wrap(db *sql.DB) *Database {
	return &Database{db: db}
}

func (db *Database) Close() error {
	if db == nil || db.db == nil {
		return nil
	}
	log.Println("DB closed.")
	return db.db.Close()
}

func (db *Database) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// QuoteIdent quotes a possibly schema-qualified identifier.
func QuoteIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = quoteProtect(part)
	}
	return strings.Join(parts, ".")
}

func quoteProtect(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func BuildSelectAllQuery(tableName string) string {
	return fmt.Sprintf("SELECT * FROM %s", QuoteIdent(tableName))
}
