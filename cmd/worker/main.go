package main

import (
	"encoding/json"
	"os"
	"time"

	"crowdvest/internal/models"
	"crowdvest/pkg/config"
	"crowdvest/schedule"

	"github.com/robfig/cron/v3"
	logrus "github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	config.InitDB()

	// Periodic vesting maturity snapshots
	c := cron.New(cron.WithSeconds())
	spec := os.Getenv("MATURITY_CRON")
	if spec == "" {
		spec = "0 */15 * * * *"
	}
	if _, err := c.AddFunc(spec, func() {
		if err := schedule.RecordVestingMaturity(config.DB, time.Now()); err != nil {
			logrus.Errorf("Failed to record vesting maturity: %v", err)
		}
	}); err != nil {
		logrus.Fatalf("Failed to add maturity job: %v", err)
	}
	c.Start()
	logrus.Infof("Maturity job scheduled: %s", spec)

	if os.Getenv("RABBITMQ_HOST") == "" {
		logrus.Info("RabbitMQ not configured, running maturity job only")
		select {}
	}

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	// Create consumer for the sale event queue
	msgConsumer, err := config.NewConsumer(config.EventQueue)
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Sale event worker started, waiting for messages...")

	// Start consuming messages
	err = msgConsumer.Consume(func(msg []byte) error {
		var event models.SaleEventLog
		if err := json.Unmarshal(msg, &event); err != nil {
			logrus.Errorf("Failed to unmarshal event: %v", err)
			return err
		}

		fields := logrus.Fields{
			"event_type":   event.EventType,
			"sale_address": event.SaleAddress,
			"amount":       event.Amount,
		}
		if event.Buyer != "" {
			fields["buyer"] = event.Buyer
		}
		if event.EventType == models.EventPurchase {
			fields["advance"] = event.Advance
			fields["vested"] = event.Vested
		}
		logrus.WithFields(fields).Info("Sale event received")

		// Immediate snapshot after a claim keeps the maturity records
		// from lagging a full cron interval behind reality.
		if event.EventType == models.EventClaim {
			if err := schedule.RecordVestingMaturity(config.DB, time.Now()); err != nil {
				logrus.Errorf("Failed to record vesting maturity: %v", err)
			}
		}

		return nil
	})

	if err != nil {
		logrus.Fatal("Failed to start consumer: ", err)
	}
}
