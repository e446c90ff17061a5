package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/db"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/config"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/ingest"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/logging"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/metrics"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/repository"
)

func main() {

	godotenv.Load()

	logging.Init()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	channelsFile := os.Getenv("CHANNELS_FILE")
	if channelsFile == "" {
		channelsFile = "channels.yaml"
	}

	channels, err := config.LoadChannels(channelsFile)
	if err != nil {
		log.Fatalf("error loading channels config: %v", err)
	}

	eventRepo := repository.NewEventRepository(db.DB)
	watermarkRepo := repository.NewWatermarkRepository(db.DB)

	engine := ingest.NewEngine(eventRepo)
	runner := ingest.NewRunner(ingest.NewScrapeSource(), engine, watermarkRepo)

	summaries := runner.RunWithDeadline(context.Background(), channels)

	for _, s := range summaries {
		metrics.ObserveRun(s)
	}

	if gateway := os.Getenv("PUSHGATEWAY_URL"); gateway != "" {
		if err := metrics.Push(gateway, "calendar_ingest"); err != nil {
			slog.Error("error pushing metrics", "error", err)
		}
	}
}
