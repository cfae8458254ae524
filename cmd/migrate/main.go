package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pratik-mahalle/cloudcost/internal/config"
	"github.com/pratik-mahalle/cloudcost/internal/repository/postgres"
	"github.com/pratik-mahalle/cloudcost/migrations"
)

const usage = `Usage: migrate <command>

Commands:
  up       apply all pending migrations (default)
  down     roll back the most recent migration
  status   print the state of every migration
  version  print the current schema version`

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	driver := cfg.Database.Driver
	fsys := migrations.GetFS()

	switch command {
	case "up":
		err = postgres.RunMigrations(ctx, db, driver, fsys)
	case "down":
		err = postgres.RollbackMigration(ctx, db, driver, fsys)
	case "status":
		err = postgres.MigrationStatus(ctx, db, driver, fsys)
	case "version":
		var version int64
		if version, err = postgres.SchemaVersion(ctx, db, driver, fsys); err == nil {
			fmt.Printf("Schema version: %d\n", version)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration %s failed: %v\n", command, err)
		os.Exit(1)
	}
	if command != "version" && command != "status" {
		fmt.Printf("Migration %s completed\n", command)
	}
}
