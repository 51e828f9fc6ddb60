package main

import (
	"flag"
	"log"

	"mindcare/internal/config"
	"mindcare/internal/db"
	"mindcare/migrations"
)

func main() {
	local := flag.Bool("local", false, "migrate the client's local storage file instead of the stub database")
	flag.Parse()

	config.LoadEnv()

	path := config.LoadStub().DBPath
	schema := migrations.Stub()
	if *local {
		path = config.LoadClient().DataPath
		schema = migrations.Local()
	}

	database, err := db.OpenSQLite(path)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, schema); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Printf("migrations applied successfully to %s", path)
}
