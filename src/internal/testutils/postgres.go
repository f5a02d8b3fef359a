// Package testutils provisions the external dependencies integration
// tests need: a throwaway PostgreSQL instance and an in-memory attachment
// store.
package testutils

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema.sql carries the enum types AutoMigrate cannot create itself.
//
//go:embed schema.sql
var schemaFS embed.FS

// SetupPostgresForIntegration returns a connected database with the enum
// types applied, plus its cleanup. An external instance can be supplied
// via TEST_DB_DSN; otherwise a postgres:15 container is started.
func SetupPostgresForIntegration() (*sql.DB, func()) {
	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			log.Fatal(err)
		}
		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}
		applySchema(db)
		return db, func() {
			_ = db.Close()
		}
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_USER":     "test",
			"POSTGRES_DB":       "appeals",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatal(err)
	}

	host, err := pg.Host(ctx)
	if err != nil {
		log.Fatal(err)
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatal(err)
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/appeals?sslmode=disable", host, port.Port())

	// retry db connect
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		log.Fatal(err)
	}

	applySchema(db)

	cleanup := func() {
		_ = db.Close()
		_ = pg.Terminate(ctx)
	}

	return db, cleanup
}

func applySchema(db *sql.DB) {
	schemaBytes, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := db.Exec(string(schemaBytes)); err != nil {
		log.Fatal(err)
	}
}
