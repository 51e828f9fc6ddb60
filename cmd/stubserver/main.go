package main

import (
	"log"

	"mindcare/internal/config"
	"mindcare/internal/db"
	"mindcare/internal/router"
	"mindcare/migrations"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadStub()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, migrations.Stub()); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	engine := router.NewStub(database, cfg)
	log.Printf("stub backend listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
