package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"anonsurvey/adapters/excel"
	"anonsurvey/adapters/postgres"
	"anonsurvey/app"
	"anonsurvey/internal/config"
	"anonsurvey/ports"
	"anonsurvey/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var store ports.RunStore
	if cfg.Database.Enabled {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect run archive: %v", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("failed to prepare run archive: %v", err)
		}
		store = postgres.NewRunStore(db)
	} else {
		log.Printf("DATABASE_URL not set; run archive routes disabled")
	}

	server := ui.NewServer(app.NewPipeline(), store, ui.Config{
		Port: cfg.Server.Port,
		Options: app.Options{
			StripPrefix: cfg.Surveys.StripPrefix,
			Anonymize:   cfg.Surveys.Anonymize,
		},
		Surveys: excel.NewSurveyReader(cfg.Surveys.IDColumn),
		Scoring: excel.NewScoringReader("Scoring"),
	})
	if err := server.Start(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
