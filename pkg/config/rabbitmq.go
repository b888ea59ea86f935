package config

import (
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	logger "github.com/sirupsen/logrus"
)

// EventQueue is the default queue sale and vesting events are published to.
const EventQueue = "crowdvest_sale_events"

var RabbitMQ *amqp.Connection

// InitRabbitMQ connects with retry; the broker is often still starting when
// the service comes up.
func InitRabbitMQ() {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		os.Getenv("RABBITMQ_USER"),
		os.Getenv("RABBITMQ_PASSWORD"),
		os.Getenv("RABBITMQ_HOST"),
		os.Getenv("RABBITMQ_PORT"),
	)

	maxRetries := 10
	retryDelay := 3 * time.Second

	var conn *amqp.Connection
	var err error

	for i := 0; i < maxRetries; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			RabbitMQ = conn
			logger.Infof("Connected to RabbitMQ at %s", os.Getenv("RABBITMQ_HOST"))
			return
		}
		if i < maxRetries-1 {
			logger.Warnf("Failed to connect to RabbitMQ (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		}
	}

	logger.Fatalf("Failed to connect to RabbitMQ after %d attempts: %v", maxRetries, err)
}

// DeleteQueue removes a queue, used by operational cleanup scripts.
func DeleteQueue(queueName string) error {
	if RabbitMQ == nil {
		return fmt.Errorf("RabbitMQ connection not initialized")
	}
	ch, err := RabbitMQ.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDelete(queueName, false, false, false); err != nil {
		return fmt.Errorf("failed to delete queue %s: %w", queueName, err)
	}
	logger.Infof("Deleted RabbitMQ queue: %s", queueName)
	return nil
}
