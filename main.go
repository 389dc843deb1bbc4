package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"

	"github.com/asaidimu/go-kente/core/pipeline"
	"github.com/asaidimu/go-kente/core/schema"
	"github.com/asaidimu/go-kente/core/statement"
	"github.com/asaidimu/go-kente/sqlite"
)

func main() {
	// --- Database Initialization ---
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer func() {
		if cErr := db.Close(); cErr != nil {
			log.Printf("Error closing database connection: %v", cErr)
		}
		fmt.Println("Database connection closed.")
	}()

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			is_active INTEGER NOT NULL DEFAULT 1
		)
	`)
	if err != nil {
		log.Fatalf("Failed to create 'users' table: %v", err)
	}
	fmt.Println("Created 'users' table.")

	// --- Descriptor Registration ---
	users, err := schema.NewTableDescriptor("users",
		schema.ColumnDescriptor{Name: "id", Type: schema.ColumnTypeInteger, PrimaryKey: true, Writable: true},
		schema.ColumnDescriptor{Name: "name", Type: schema.ColumnTypeText, Writable: true},
		schema.ColumnDescriptor{Name: "email", Type: schema.ColumnTypeText, Nullable: true, Writable: true},
		schema.ColumnDescriptor{Name: "is_active", Type: schema.ColumnTypeBoolean, HasDefault: true, Writable: true},
	)
	if err != nil {
		log.Fatalf("Failed to build 'users' descriptor: %v", err)
	}

	tbl := statement.NewTable(users, sqlite.NewDialect())

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	pipe, err := pipeline.NewPipeline(logger)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}

	pipe.RegisterSubscription(pipeline.RegisterSubscriptionOptions{
		Event: pipeline.StatementCompileSuccess,
		Callback: func(ctx context.Context, event pipeline.Event) error {
			if event.SQL != nil {
				fmt.Printf("compiled [%s]: %s\n", *event.Dialect, *event.SQL)
			}
			return nil
		},
	})

	// --- Data Operations ---
	// A mixed batch: the first row carries its own key, the others let the
	// database generate one.
	fmt.Println("Inserting sample data...")
	insert, err := tbl.Insert().
		Rows(
			schema.Document{"id": int64(100), "name": "Alice Smith", "email": "alice@example.com"},
			schema.Document{"name": "Bob Jones", "email": "bob@example.com"},
			schema.Document{"name": "Carol White"},
		).
		Build()
	if err != nil {
		log.Fatalf("Failed to build insert: %v", err)
	}
	if err := execute(db, pipe, insert); err != nil {
		log.Fatalf("Failed to insert sample data: %v", err)
	}

	update, err := tbl.Update().
		Set("is_active", false).
		Where(statement.Eq(tbl.Col("name"), "Carol White")).
		Build()
	if err != nil {
		log.Fatalf("Failed to build update: %v", err)
	}
	if err := execute(db, pipe, update); err != nil {
		log.Fatalf("Failed to update: %v", err)
	}

	// --- Query and Print ---
	fmt.Println("\nQuerying data from 'users' table:")
	sel, err := tbl.Select().
		Where(statement.IsNotNull(tbl.Col("name"))).
		OrderBy(statement.Asc(tbl.Col("id"))).
		Build()
	if err != nil {
		log.Fatalf("Failed to build select: %v", err)
	}

	compiled, err := pipe.Compile(sel)
	if err != nil {
		log.Fatalf("Failed to compile select: %v", err)
	}
	args, err := sqlite.Args(compiled.Bindings)
	if err != nil {
		log.Fatalf("Failed to convert bindings: %v", err)
	}

	rows, err := db.Query(compiled.SQL, args...)
	if err != nil {
		log.Fatalf("Failed to read database: %v", err)
	}
	defer rows.Close()

	fmt.Println("-------------------------------------------------------------------")
	fmt.Printf("%-10s %-20s %-25s %-10s\n", "ID", "Name", "Email", "Active")
	fmt.Println("-------------------------------------------------------------------")

	for rows.Next() {
		var (
			id       int64
			name     string
			email    sql.NullString
			isActive int64
		)
		if err := rows.Scan(&id, &name, &email, &isActive); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}

		values := []any{id, name, nil, isActive}
		if email.Valid {
			values[2] = email.String
		}
		doc, err := pipe.Decode(values, users)
		if err != nil {
			log.Fatalf("Failed to decode row: %v", err)
		}

		emailOut := "-"
		if v, ok := doc["email"].(string); ok {
			emailOut = v
		}
		fmt.Printf("%-10d %-20s %-25s %-10t\n", doc["id"].(int64), doc["name"].(string), emailOut, doc["is_active"].(int64) != 0)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}
	fmt.Println("-------------------------------------------------------------------")

	// --- Cleanup ---
	del, err := tbl.Delete().Unsafe().Build()
	if err != nil {
		log.Fatalf("Failed to build delete: %v", err)
	}
	if err := execute(db, pipe, del); err != nil {
		log.Fatalf("Failed to delete sample data: %v", err)
	}
	fmt.Println("Cleared 'users' table.")
}

func execute(db *sql.DB, pipe *pipeline.Pipeline, stmt *statement.Statement) error {
	compiled, err := pipe.Compile(stmt)
	if err != nil {
		return err
	}
	if compiled.IsNoop() {
		return nil
	}
	args, err := sqlite.Args(compiled.Bindings)
	if err != nil {
		return err
	}
	_, err = db.Exec(compiled.SQL, args...)
	return err
}
