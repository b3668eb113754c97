// @title MediPublish API
// @version 1.0
// @description Backend for the MediPublish medical content and CME platform.

// @contact.name API Support
// @contact.email support@medipublish.example

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"medipublish_backend/internal/app"
	"medipublish_backend/internal/config"
	"medipublish_backend/pkg/configwatcher"
	"medipublish_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go func() {
		if err := configwatcher.Watch("configs/config.yaml", application.ApplyConfig); err != nil {
			log.Printf("config watcher disabled: %v", err)
		}
	}()

	application.Run()
}
