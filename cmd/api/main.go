package main

import (
	"log"
	"os"

	"crowdvest/internal/events"
	"crowdvest/internal/handlers"
	"crowdvest/internal/handlers/business"
	"crowdvest/internal/routes"
	"crowdvest/pkg/config"
	"crowdvest/pkg/custody"
	"crowdvest/pkg/solana"
)

func main() {
	// Initialize database
	config.InitDB()

	hub := events.NewHub()

	// Initialize RabbitMQ (optional, will log warning if not configured)
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()

		publisher, err := config.NewPublisher()
		if err != nil {
			log.Fatal("Create publisher failed:", err)
		}
		defer publisher.Close()
		hub.AttachPublisher(publisher)
		log.Println("RabbitMQ initialized successfully")
	} else {
		log.Println("RabbitMQ not configured, skipping initialization")
	}

	// Wire the sale engine
	engine := business.NewEngine(config.DB, custody.NewLedger(), solana.NewProgramDeriver())
	engine.Notifier = hub
	handlers.Init(engine)

	// Set up router
	r := routes.SetupRouter(hub)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
