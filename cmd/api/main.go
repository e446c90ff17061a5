package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/db"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/handler"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/logging"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/metrics"
	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/prices"
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

	if err := db.ConnectRedis(); err != nil {
		slog.Warn("redis unavailable, price cache disabled", "error", err)
	}
	defer db.CloseRedis()

	priceService := prices.New(db.Redis)
	priceService.Start(context.Background())
	defer priceService.Stop()

	eventRepo := repository.NewEventRepository(db.DB)
	eventHandler := handler.NewEventHandler(eventRepo)
	priceHandler := handler.NewPriceHandler(priceService)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/events", eventHandler.GetFeed)
	r.GET("/events/:id", eventHandler.GetEvent)
	r.GET("/pending", eventHandler.GetPending)
	r.GET("/suggestions", eventHandler.GetSuggestions)
	r.GET("/prices", priceHandler.GetPrices)
	r.GET("/health", eventHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
